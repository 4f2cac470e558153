// Package pm models the JavaScript package managers Loom can drive and
// the command lines it issues through them.
package pm

// Manager identifies a supported package manager.
type Manager string

const (
	Yarn Manager = "yarn"
	Pnpm Manager = "pnpm"
	Npm  Manager = "npm"
)

// String returns the manager's binary name.
func (m Manager) String() string {
	return string(m)
}

// Command is an executable name plus its arguments, ready for exec.
type Command struct {
	Name string
	Args []string
}

// profile holds the per-manager argv shapes for each task Loom performs.
type profile struct {
	initArgs   []string // initialize a package manifest
	addArgs    []string // install runtime dependencies
	addDevArgs []string // install dev dependencies
	createNext Command  // bootstrap a Next.js app
	install    string   // display-only: install everything
	dev        string   // display-only: start the dev server
}

var registry = map[Manager]profile{
	Yarn: {
		initArgs:   []string{"init", "-y"},
		addArgs:    []string{"add"},
		addDevArgs: []string{"add", "-D"},
		createNext: Command{Name: "yarn", Args: []string{"create", "next-app"}},
		install:    "yarn install",
		dev:        "yarn dev",
	},
	Pnpm: {
		initArgs:   []string{"init"},
		addArgs:    []string{"add"},
		addDevArgs: []string{"add", "-D"},
		createNext: Command{Name: "pnpm", Args: []string{"create", "next-app"}},
		install:    "pnpm install",
		dev:        "pnpm dev",
	},
	Npm: {
		initArgs:   []string{"init", "-y"},
		addArgs:    []string{"install"},
		addDevArgs: []string{"install", "--save-dev"},
		createNext: Command{Name: "npx", Args: []string{"create-next-app@latest"}},
		install:    "npm install",
		dev:        "npm run dev",
	},
}

// Init returns the command that initializes a package manifest.
func (m Manager) Init() Command {
	return Command{Name: string(m), Args: registry[m].initArgs}
}

// Add returns the command that installs the given packages. Dev
// dependencies use the manager's dev flag form.
func (m Manager) Add(dev bool, packages ...string) Command {
	p := registry[m]
	args := p.addArgs
	if dev {
		args = p.addDevArgs
	}
	out := make([]string, 0, len(args)+len(packages))
	out = append(out, args...)
	out = append(out, packages...)
	return Command{Name: string(m), Args: out}
}

// CreateNextApp returns the command that bootstraps a Next.js app,
// with extra arguments (target directory, generator flags) appended.
func (m Manager) CreateNextApp(extra ...string) Command {
	base := registry[m].createNext
	args := make([]string, 0, len(base.Args)+len(extra))
	args = append(args, base.Args...)
	args = append(args, extra...)
	return Command{Name: base.Name, Args: args}
}

// InstallCommand returns the human-facing install command for READMEs
// and next-step hints.
func (m Manager) InstallCommand() string {
	return registry[m].install
}

// DevCommand returns the human-facing dev-server command for READMEs
// and next-step hints.
func (m Manager) DevCommand() string {
	return registry[m].dev
}
