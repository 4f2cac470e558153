// Package backend plans Node.js/Express backend projects.
package backend

import (
	"embed"
	"fmt"

	"github.com/joho/godotenv"

	"github.com/loom-cli/loom/internal/config"
	"github.com/loom-cli/loom/internal/plan"
	"github.com/loom-cli/loom/internal/render"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// layoutDirs is the fixed directory skeleton of a backend project.
var layoutDirs = []string{
	"src",
	"src/controllers",
	"src/models",
	"src/routes",
	"src/middleware",
	"src/services",
	"src/utils",
	"src/types",
	"src/config",
	"tests/unit",
	"tests/integration",
	"docs",
	"logs",
}

// baseDeps is installed for every backend project.
var baseDeps = []string{"express", "cors", "dotenv", "helmet", "morgan"}

// tsDevDeps is the dev toolchain for TypeScript projects. Plain
// JavaScript projects only need nodemon.
var tsDevDeps = []string{
	"typescript",
	"ts-node",
	"nodemon",
	"@types/node",
	"@types/express",
	"@types/cors",
	"@types/morgan",
}

// barrelModules get an empty re-export file under src/<module>/index.
var barrelModules = []string{"controllers", "models", "middleware", "services", "utils"}

var tsScripts = map[string]string{
	"build": "tsc",
	"start": "node dist/index.js",
	"dev":   "nodemon --exec ts-node src/index.ts",
	"test":  `echo "Error: no test specified" && exit 1`,
}

var jsScripts = map[string]string{
	"start": "node src/index.js",
	"dev":   "nodemon src/index.js",
	"test":  `echo "Error: no test specified" && exit 1`,
}

// exampleEnv seeds .env.example. godotenv's serializer keeps the keys
// sorted and quoted the same way its loader reads them back.
var exampleEnv = map[string]string{
	"NODE_ENV":    "development",
	"PORT":        "3001",
	"CORS_ORIGIN": "http://localhost:3000",
}

// docsData feeds the docs/README.md template.
type docsData struct {
	Name    string
	Install string
	Dev     string
}

// Generator plans an Express backend.
type Generator struct {
	renderer *render.Renderer
}

// New creates a backend generator.
func New() *Generator {
	return &Generator{renderer: render.NewRenderer()}
}

func (g *Generator) Name() string { return "backend" }

// Generate returns the backend plan: init the package manifest, lay
// out the source tree, write the starter files, install dependencies,
// and point the manifest's scripts at the generated entrypoint.
func (g *Generator) Generate(cfg config.Project) ([]plan.Step, error) {
	var steps []plan.Step

	steps = append(steps, &plan.RunCommand{
		Cmd:   cfg.PackageManager.Init(),
		Label: "Initialize package manifest",
	})
	steps = append(steps, &plan.MakeDirs{Dirs: layoutDirs})

	files, err := g.starterFiles(cfg)
	if err != nil {
		return nil, err
	}
	steps = append(steps, files...)

	steps = append(steps, &plan.InstallDeps{Packages: baseDeps})
	if cfg.TypeScript {
		steps = append(steps, &plan.InstallDeps{Packages: tsDevDeps, Dev: true})
		tsconfig, err := g.renderer.RenderFS(templatesFS, "templates/tsconfig.json.tmpl", nil)
		if err != nil {
			return nil, err
		}
		steps = append(steps, &plan.WriteFile{Path: "tsconfig.json", Content: tsconfig, Mode: 0o644})
	} else {
		steps = append(steps, &plan.InstallDeps{Packages: []string{"nodemon"}, Dev: true})
	}

	scripts := jsScripts
	if cfg.TypeScript {
		scripts = tsScripts
	}
	steps = append(steps, &plan.RewriteScripts{Scripts: scripts})

	return steps, nil
}

// starterFiles plans the thirteen files every backend project gets.
func (g *Generator) starterFiles(cfg config.Project) ([]plan.Step, error) {
	ext := ".js"
	if cfg.TypeScript {
		ext = ".ts"
	}

	var steps []plan.Step
	write := func(path, template string, data any) error {
		content, err := g.renderer.RenderFS(templatesFS, template, data)
		if err != nil {
			return err
		}
		steps = append(steps, &plan.WriteFile{Path: path, Content: content, Mode: 0o644})
		return nil
	}

	langFiles := []struct {
		path     string
		template string
	}{
		{"src/index" + ext, "templates/index" + ext + ".tmpl"},
		{"src/app" + ext, "templates/app" + ext + ".tmpl"},
		{"src/config/index" + ext, "templates/config" + ext + ".tmpl"},
		{"src/routes/index" + ext, "templates/routes" + ext + ".tmpl"},
	}
	for _, f := range langFiles {
		if err := write(f.path, f.template, nil); err != nil {
			return nil, err
		}
	}

	lang := map[string]any{"TypeScript": cfg.TypeScript}
	for _, module := range barrelModules {
		path := fmt.Sprintf("src/%s/index%s", module, ext)
		if err := write(path, "templates/barrel.tmpl", lang); err != nil {
			return nil, err
		}
	}

	if err := write("docs/README.md", "templates/docs.md.tmpl", docsData{
		Name:    cfg.Name,
		Install: cfg.PackageManager.InstallCommand(),
		Dev:     cfg.PackageManager.DevCommand(),
	}); err != nil {
		return nil, err
	}
	if err := write(".gitignore", "templates/gitignore.tmpl", nil); err != nil {
		return nil, err
	}

	env, err := godotenv.Marshal(exampleEnv)
	if err != nil {
		return nil, fmt.Errorf("building .env.example: %w", err)
	}
	steps = append(steps, &plan.WriteFile{Path: ".env.example", Content: []byte(env + "\n"), Mode: 0o644})
	steps = append(steps, &plan.WriteFile{Path: "logs/.gitkeep", Content: []byte{}, Mode: 0o644})

	return steps, nil
}
