package compose

// ArgumentKind identifies what a command's positional argument completes to
type ArgumentKind int

const (
	// ServicesArgument completes service names declared in the compose file
	ServicesArgument ArgumentKind = iota + 1
)

// ArgumentSpec describes the positional argument slot of a command
type ArgumentSpec struct {
	Kind ArgumentKind
	// Single caps the slot at one value across the whole command line
	Single bool
}

// OptionGroup lists interchangeable spellings of one option
type OptionGroup []string

// Grammar describes the options and argument of one docker-compose command
type Grammar struct {
	Name     string
	Options  []OptionGroup
	Argument *ArgumentSpec
}

func opt(aliases ...string) OptionGroup {
	return OptionGroup(aliases)
}

var (
	services       = &ArgumentSpec{Kind: ServicesArgument}
	singleService  = &ArgumentSpec{Kind: ServicesArgument, Single: true}
	defaultTimeout = []string{"0", "10", "20", "30"}
)

// DefaultCommands is the docker-compose command table, in the order the
// commands are offered
var DefaultCommands = []Grammar{
	{Name: "build"},
	{Name: "config"},
	{Name: "create"},
	{
		Name: "down",
		Options: []OptionGroup{
			opt("--rmi"),
			opt("-v", "--volumes"),
			opt("--remove-orphans"),
			opt("-t", "--timeout"),
		},
	},
	{Name: "events"},
	{
		Name: "exec",
		Options: []OptionGroup{
			opt("-d", "--detach"),
			opt("--privileged"),
			opt("-u", "--user"),
			opt("-T"),
			opt("-e", "--env"),
			opt("-w", "--workdir"),
		},
		Argument: singleService,
	},
	{Name: "help"},
	{Name: "images"},
	{Name: "kill"},
	{
		Name: "logs",
		Options: []OptionGroup{
			opt("-f", "--follow"),
			opt("-t", "--timestamps"),
			opt("--tail"),
			opt("--no-color"),
		},
		Argument: services,
	},
	{Name: "pause"},
	{Name: "port"},
	{
		Name: "ps",
		Options: []OptionGroup{
			opt("-a", "--all"),
			opt("--services"),
			opt("--filter"),
			opt("-q", "--quiet"),
		},
		Argument: services,
	},
	{
		Name: "pull",
		Options: []OptionGroup{
			opt("--ignore-pull-failures"),
			opt("--no-parallel"),
			opt("-q", "--quiet"),
			opt("--include-deps"),
		},
		Argument: services,
	},
	{
		Name:    "push",
		Options: []OptionGroup{opt("--ignore-push-failures")},
	},
	{
		Name:     "restart",
		Options:  []OptionGroup{opt("-t", "--timeout")},
		Argument: services,
	},
	{
		Name: "rm",
		Options: []OptionGroup{
			opt("-f", "--force"),
			opt("-s", "--stop"),
			opt("-v"),
			opt("-a", "--all"),
		},
		Argument: services,
	},
	{
		Name: "run",
		Options: []OptionGroup{
			opt("-d", "--detach"),
			opt("--name"),
			opt("--entrypoint"),
			opt("-e"),
			opt("-l", "--label"),
			opt("-u", "--user"),
			opt("--no-deps"),
			opt("--rm"),
			opt("-p", "--publish"),
			opt("--service-ports"),
			opt("--use-aliases"),
			opt("-v", "--volume"),
			opt("-T"),
			opt("-w", "--workdir"),
		},
		Argument: singleService,
	},
	{Name: "scale"},
	{Name: "start", Argument: services},
	{
		Name:     "stop",
		Options:  []OptionGroup{opt("-t", "--timeout")},
		Argument: services,
	},
	{Name: "top"},
	{Name: "unpause", Argument: services},
	{
		Name: "up",
		Options: []OptionGroup{
			opt("-d", "--detach"),
			opt("-t", "--timeout"),
			opt("--no-deps"),
			opt("--remove-orphans"),
		},
		Argument: services,
	},
	{Name: "version"},
}

// DefaultOptionValues maps options that take a value to the values offered
// for it. An empty list means the value is free-form: nothing is offered, and
// the command's options are not offered either.
var DefaultOptionValues = map[string][]string{
	"--entrypoint": {},
	"-e":           {},
	"-l":           {},
	"--filter":     {},
	"--label":      {},
	"--name":       {},
	"--rmi":        {"all", "local"},
	"-t":           defaultTimeout,
	"--timeout":    defaultTimeout,
	"-u":           {},
	"--user":       {},
	"-w":           {},
	"--workdir":    {},
}
