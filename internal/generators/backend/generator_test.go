package backend_test

import (
	"strings"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loom-cli/loom/internal/config"
	"github.com/loom-cli/loom/internal/generators/backend"
	"github.com/loom-cli/loom/internal/plan"
	"github.com/loom-cli/loom/internal/pm"
)

func backendConfig(typescript bool) config.Project {
	return config.Project{
		Type:           config.Backend,
		Name:           "shop-api",
		BasePath:       "/tmp",
		PackageManager: pm.Npm,
		TypeScript:     typescript,
		StyleSheets:    true,
	}
}

func findWrite(t *testing.T, steps []plan.Step, path string) *plan.WriteFile {
	t.Helper()
	for _, s := range steps {
		if w, ok := s.(*plan.WriteFile); ok && w.Path == path {
			return w
		}
	}
	return nil
}

func writtenPaths(steps []plan.Step) []string {
	var paths []string
	for _, s := range steps {
		if w, ok := s.(*plan.WriteFile); ok {
			paths = append(paths, w.Path)
		}
	}
	return paths
}

func TestGenerate_PlanShape(t *testing.T) {
	gen := backend.New()
	steps, err := gen.Generate(backendConfig(true))
	require.NoError(t, err)
	require.NotEmpty(t, steps)

	initStep, ok := steps[0].(*plan.RunCommand)
	require.True(t, ok, "first step must run the package init, got %T", steps[0])
	assert.Equal(t, "npm", initStep.Cmd.Name)
	assert.Equal(t, []string{"init", "-y"}, initStep.Cmd.Args)

	dirs, ok := steps[1].(*plan.MakeDirs)
	require.True(t, ok, "second step must create the layout, got %T", steps[1])
	assert.Len(t, dirs.Dirs, 13)
	assert.Contains(t, dirs.Dirs, "src/controllers")
	assert.Contains(t, dirs.Dirs, "tests/integration")

	_, ok = steps[len(steps)-1].(*plan.RewriteScripts)
	assert.True(t, ok, "last step must rewrite the manifest scripts, got %T", steps[len(steps)-1])
}

func TestGenerate_TypeScript(t *testing.T) {
	gen := backend.New()
	steps, err := gen.Generate(backendConfig(true))
	require.NoError(t, err)

	require.NotNil(t, findWrite(t, steps, "tsconfig.json"), "TypeScript plan must emit tsconfig.json")
	require.NotNil(t, findWrite(t, steps, "src/index.ts"))
	assert.Nil(t, findWrite(t, steps, "src/index.js"))

	var installs []*plan.InstallDeps
	for _, s := range steps {
		if in, ok := s.(*plan.InstallDeps); ok {
			installs = append(installs, in)
		}
	}
	require.Len(t, installs, 2)
	assert.False(t, installs[0].Dev)
	assert.Equal(t, []string{"express", "cors", "dotenv", "helmet", "morgan"}, installs[0].Packages)
	assert.True(t, installs[1].Dev)
	assert.Contains(t, installs[1].Packages, "typescript")
	assert.Contains(t, installs[1].Packages, "ts-node")
	assert.Contains(t, installs[1].Packages, "@types/express")

	rewrite := steps[len(steps)-1].(*plan.RewriteScripts)
	assert.Equal(t, "tsc", rewrite.Scripts["build"])
	assert.Equal(t, "nodemon --exec ts-node src/index.ts", rewrite.Scripts["dev"])
}

func TestGenerate_PlainJavaScript(t *testing.T) {
	gen := backend.New()
	steps, err := gen.Generate(backendConfig(false))
	require.NoError(t, err)

	assert.Nil(t, findWrite(t, steps, "tsconfig.json"), "plain plan must not emit tsconfig.json")
	require.NotNil(t, findWrite(t, steps, "src/index.js"))

	var devInstall *plan.InstallDeps
	for _, s := range steps {
		if in, ok := s.(*plan.InstallDeps); ok && in.Dev {
			devInstall = in
		}
	}
	require.NotNil(t, devInstall)
	assert.Equal(t, []string{"nodemon"}, devInstall.Packages)

	rewrite := steps[len(steps)-1].(*plan.RewriteScripts)
	_, hasBuild := rewrite.Scripts["build"]
	assert.False(t, hasBuild, "plain scripts must not contain a build entry")
	assert.Equal(t, "node src/index.js", rewrite.Scripts["start"])
	assert.Equal(t, "nodemon src/index.js", rewrite.Scripts["dev"])
}

func TestGenerate_ThirteenStarterFiles(t *testing.T) {
	gen := backend.New()
	steps, err := gen.Generate(backendConfig(false))
	require.NoError(t, err)

	paths := writtenPaths(steps)
	assert.Len(t, paths, 13)
	for _, want := range []string{
		"src/index.js",
		"src/app.js",
		"src/config/index.js",
		"src/routes/index.js",
		"src/controllers/index.js",
		"src/models/index.js",
		"src/middleware/index.js",
		"src/services/index.js",
		"src/utils/index.js",
		"docs/README.md",
		"logs/.gitkeep",
		".gitignore",
		".env.example",
	} {
		assert.Contains(t, paths, want)
	}
}

func TestGenerate_StarterFileContent(t *testing.T) {
	gen := backend.New()
	steps, err := gen.Generate(backendConfig(true))
	require.NoError(t, err)

	app := findWrite(t, steps, "src/app.ts")
	require.NotNil(t, app)
	assert.Contains(t, string(app.Content), "import express")
	assert.Contains(t, string(app.Content), "helmet()")
	assert.Contains(t, string(app.Content), "morgan('dev')")

	barrel := findWrite(t, steps, "src/controllers/index.ts")
	require.NotNil(t, barrel)
	assert.Equal(t, "export {};\n", string(barrel.Content))

	docs := findWrite(t, steps, "docs/README.md")
	require.NotNil(t, docs)
	assert.Contains(t, string(docs.Content), "# Shop Api API")
	assert.Contains(t, string(docs.Content), "npm install")
	assert.Contains(t, string(docs.Content), "npm run dev")

	ignore := findWrite(t, steps, ".gitignore")
	require.NotNil(t, ignore)
	assert.Contains(t, string(ignore.Content), "node_modules/")
	assert.Contains(t, string(ignore.Content), ".env")
}

func TestGenerate_JavaScriptBarrel(t *testing.T) {
	gen := backend.New()
	steps, err := gen.Generate(backendConfig(false))
	require.NoError(t, err)

	barrel := findWrite(t, steps, "src/services/index.js")
	require.NotNil(t, barrel)
	assert.Equal(t, "module.exports = {};\n", string(barrel.Content))
}

func TestGenerate_EnvExampleRoundTrips(t *testing.T) {
	gen := backend.New()
	steps, err := gen.Generate(backendConfig(true))
	require.NoError(t, err)

	example := findWrite(t, steps, ".env.example")
	require.NotNil(t, example)

	content := string(example.Content)
	env, err := godotenv.Unmarshal(content)
	require.NoError(t, err)
	assert.Equal(t, "development", env["NODE_ENV"])
	assert.Equal(t, "3001", env["PORT"])
	assert.Equal(t, "http://localhost:3000", env["CORS_ORIGIN"])

	// Serialized keys stay sorted.
	assert.Less(t, strings.Index(content, "CORS_ORIGIN"), strings.Index(content, "NODE_ENV"))
	assert.Less(t, strings.Index(content, "NODE_ENV"), strings.Index(content, "PORT"))
}
