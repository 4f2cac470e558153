// Package frontend plans Next.js frontend projects.
package frontend

import (
	"embed"

	"github.com/loom-cli/loom/internal/config"
	"github.com/loom-cli/loom/internal/plan"
	"github.com/loom-cli/loom/internal/render"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// layoutDirs is the fixed directory skeleton created inside the app
// after create-next-app ran.
var layoutDirs = []string{
	"components/ui",
	"components/forms",
	"components/layout",
	"hooks",
	"utils",
	"types",
	"constants",
	"services",
	"styles",
	"public/images",
	"public/icons",
}

// styleFiles are written in order; main.scss imports the other three.
var styleFiles = []struct {
	name     string
	template string
}{
	{"_variables.scss", "templates/variables.scss.tmpl"},
	{"_mixins.scss", "templates/mixins.scss.tmpl"},
	{"_globals.scss", "templates/globals.scss.tmpl"},
	{"main.scss", "templates/main.scss.tmpl"},
}

// componentFiles get the language extension (.tsx or .jsx) appended.
var componentFiles = []string{
	"components/ui/Button",
	"components/ui/Card",
	"components/forms/ContactForm",
	"components/layout/Header",
	"components/layout/Footer",
}

// utilityFiles get the language extension (.ts or .js) appended.
var utilityFiles = []string{
	"utils/helpers",
	"services/api",
	"constants/index",
	"types/index",
}

// Generator plans a Next.js frontend.
type Generator struct {
	renderer *render.Renderer
}

// New creates a frontend generator.
func New() *Generator {
	return &Generator{renderer: render.NewRenderer()}
}

func (g *Generator) Name() string { return "frontend" }

// Generate returns the frontend plan: bootstrap the app with
// create-next-app, lay out the extra directories, then fill in style
// sheets and placeholder files according to the configuration.
func (g *Generator) Generate(cfg config.Project) ([]plan.Step, error) {
	var steps []plan.Step

	steps = append(steps, &plan.RunCommand{
		Cmd:   cfg.PackageManager.CreateNextApp(bootstrapArgs(cfg)...),
		Label: "Bootstrap Next.js app",
	})

	steps = append(steps, &plan.MakeDirs{Dirs: layoutDirs})

	if cfg.StyleSheets {
		steps = append(steps, &plan.InstallDeps{Packages: []string{"sass"}, Dev: true})
		for _, f := range styleFiles {
			content, err := g.renderer.RenderFS(templatesFS, f.template, nil)
			if err != nil {
				return nil, err
			}
			steps = append(steps, &plan.WriteFile{
				Path:    "styles/" + f.name,
				Content: content,
				Mode:    0o644,
			})
		}
	}

	componentExt, scriptExt := ".jsx", ".js"
	if cfg.TypeScript {
		componentExt, scriptExt = ".tsx", ".ts"
	}
	for _, name := range componentFiles {
		steps = append(steps, &plan.WriteFile{Path: name + componentExt, Content: []byte{}, Mode: 0o644})
	}
	for _, name := range utilityFiles {
		steps = append(steps, &plan.WriteFile{Path: name + scriptExt, Content: []byte{}, Mode: 0o644})
	}

	return steps, nil
}

// bootstrapArgs builds the create-next-app argument list. The app is
// generated into the current project directory, never a subdirectory.
func bootstrapArgs(cfg config.Project) []string {
	args := []string{"."}
	if cfg.TypeScript {
		args = append(args, "--typescript")
	} else {
		args = append(args, "--javascript")
	}
	return append(args,
		"--eslint",
		"--app",
		"--no-tailwind",
		"--src-dir=false",
		"--import-alias", "@/*",
	)
}
