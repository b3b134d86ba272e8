package config

import (
	"image"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdginn/go-raytracer/tracer"
)

const gradientScene = `
input:
  environment_map:
    gradient:
      - colatitude: 0
        color: [0.2, 0.7, 0.8]
      - colatitude: 180
        color: [0.1, 0.1, 0.1]
materials:
  inline:
    chalk:
      refractive_index: 1.0
      albedo: [1.0, 0.0, 0.0, 0.0]
      diffuse_color: [0.9, 0.9, 0.9]
      specular_exponent: 1
camera:
  width: 64
  height: 48
  fov_degrees: 90
  position: [0, 0, 1]
render:
  max_depth: 2
  output: out.png
spheres:
  - center: [0, 0, -5]
    radius: 1
    material: chalk
  - center: [2, 0, -5]
    radius: 1
    material: mirror
checkerboard:
  height: -2
  x_extent: 5
  z_near: -2
  z_far: -20
  even: [0.3, 0.2, 0.1]
  odd: [0.3, 0.3, 0.3]
lights:
  - position: [0, 10, 0]
    intensity: 1.2
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func fields(errs []ValidationError) []string {
	out := make([]string, len(errs))
	for i, err := range errs {
		out[i] = err.Field
	}
	return out
}

func TestDefault(t *testing.T) {
	cfg, err := Default(LoadOptions{ValidateImmediately: true})
	require.NoError(t, err)

	assert.Equal(t, "envmap.jpg", cfg.Input.EnvironmentMap.Path)
	require.NotNil(t, cfg.Input.Mesh)
	assert.Equal(t, "duck.obj", cfg.Input.Mesh.Path)
	assert.Len(t, cfg.Spheres, 3)
	require.NotNil(t, cfg.Composite)
	assert.Equal(t, "dark_rubber", cfg.Composite.A.Material)
	require.NotNil(t, cfg.Checkerboard)
	assert.Len(t, cfg.Lights, 3)
	assert.Equal(t, 1024, cfg.Camera.Width)
	assert.Equal(t, 768, cfg.Camera.Height)
	assert.Equal(t, tracer.DefaultMaxDepth, cfg.Render.MaxDepth)
	assert.Equal(t, "out.jpg", cfg.Render.Output)

	cam := cfg.Camera.Create()
	def := tracer.DefaultCamera()
	assert.Equal(t, def.Position, cam.Position)
	assert.Equal(t, def.Width, cam.Width)
	assert.InDelta(t, def.FOV, cam.FOV, 1e-12)

	floor := cfg.Checkerboard.Create()
	assert.Equal(t, tracer.DefaultCheckerboard(), floor)
}

func TestLoadFromFileAndBuild(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "scene.yaml", gradientScene)

	cfg, err := LoadFromFile(path, LoadOptions{ValidateImmediately: true, ResolvePaths: true, MergeFiles: true})
	require.NoError(t, err)

	scene, cam, err := cfg.Build()
	require.NoError(t, err)
	assert.Equal(t, 64, cam.Width)
	assert.InDelta(t, math.Pi/2, cam.FOV, 1e-12)
	assert.Equal(t, tracer.V(0, 0, 1), cam.Position)
	assert.Equal(t, 2, scene.MaxDepth())
	assert.Len(t, scene.Lights(), 1)
	assert.Len(t, scene.Candidates(), 3)
	assert.Equal(t, 360, scene.Environment().Width)

	hit, ok := scene.Intersect(cam.Position, tracer.V(0, 0, -1))
	require.True(t, ok)
	assert.Equal(t, "chalk", hit.Material.Name)
	assert.Equal(t, tracer.C(0.9, 0.9, 0.9), hit.Material.DiffuseColor)

	hit, ok = scene.Intersect(tracer.V(2, 0, 1), tracer.V(0, 0, -1))
	require.True(t, ok)
	assert.Equal(t, tracer.Mirror, hit.Material)
}

func TestLoadFromFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFromFile(filepath.Join(dir, "missing.yaml"), LoadOptions{})
	assert.ErrorContains(t, err, "reading config file")

	bad := writeFile(t, dir, "bad.yaml", "camera: [1, 2")
	_, err = LoadFromFile(bad, LoadOptions{})
	assert.ErrorContains(t, err, "parsing config file")

	invalid := writeFile(t, dir, "invalid.yaml", "camera:\n  width: 0\n")
	_, err = LoadFromFile(invalid, LoadOptions{ValidateImmediately: true})
	assert.ErrorContains(t, err, "validation errors")

	cfg, err := LoadFromFile(invalid, LoadOptions{})
	require.NoError(t, err, "validation only runs when asked")
	assert.Zero(t, cfg.Camera.Width)
}

func TestValidate(t *testing.T) {
	cfg, err := Default(LoadOptions{})
	require.NoError(t, err)
	require.Empty(t, cfg.Validate())

	cfg.Input.EnvironmentMap.Gradient = []GradientStop{{Colatitude: 200, Color: [3]float64{1, 2, 0}}}
	cfg.Input.Mesh.Material = "unobtainium"
	cfg.Input.Mesh.FitInside = &[2][3]float64{{0, 0, 0}, {1, 0, 1}}
	cfg.Camera.Width = 0
	cfg.Camera.FOVDegrees = 180
	cfg.Render.Output = ""
	cfg.Spheres[1].Radius = -1
	cfg.Spheres[2].Material = "chrome"
	cfg.Composite.B.Material = "nothing"
	cfg.Checkerboard.ZFar = 0
	cfg.Lights[0].Intensity = -1
	cfg.Materials.Inline["dark_rubber"] = Material{RefractiveIndex: 0, DiffuseColor: [3]float64{0.1, 0.1, 0.1}}

	errs := cfg.Validate()
	assert.ElementsMatch(t, []string{
		"input.environment_map",
		"input.environment_map.gradient[0].colatitude",
		"input.environment_map.gradient[0].color[1]",
		"input.mesh.material",
		"input.mesh.fit_inside",
		"materials.inline.dark_rubber.refractive_index",
		"camera.width",
		"camera.fov_degrees",
		"render.output",
		"spheres[1].radius",
		"spheres[2].material",
		"composite.b.material",
		"checkerboard.z_far",
		"lights[0].intensity",
	}, fields(errs))

	report := FormatValidationErrors(errs)
	assert.Contains(t, report, "CAMERA:")
	assert.Contains(t, report, "SPHERES:")
	assert.Contains(t, report, "  - width: must be positive")
	assert.Contains(t, report, "undefined material 'chrome'")
}

func TestValidateEnvironmentMapNeedsASource(t *testing.T) {
	cfg, err := Default(LoadOptions{})
	require.NoError(t, err)
	cfg.Input.EnvironmentMap.Path = ""
	assert.Equal(t, []string{"input.environment_map"}, fields(cfg.Validate()))
}

func TestFormatValidationErrorsEmpty(t *testing.T) {
	assert.Empty(t, FormatValidationErrors(nil))
}

func TestMergeMaterials(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "materials.json", `{
  "chalk": {"refractive_index": 1.0, "albedo": [1, 0, 0, 0], "diffuse_color": [0.9, 0.9, 0.9], "specular_exponent": 1},
  "dark_rubber": {"refractive_index": 1.0, "albedo": [0, 0, 1, 0], "diffuse_color": [1, 1, 1], "specular_exponent": 1}
}`)
	path := writeFile(t, dir, "scene.yaml", `
materials:
  from_file: materials.json
  inline:
    dark_rubber:
      refractive_index: 1.0
      albedo: [0.9, 0.1, 0.0, 0.0]
      diffuse_color: [0.1, 0.1, 0.1]
      specular_exponent: 10
`)

	cfg, err := LoadFromFile(path, LoadOptions{ResolvePaths: true, MergeFiles: true})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "materials.json"), cfg.Materials.FromFile)
	require.Len(t, cfg.Materials.Inline, 2)
	assert.Equal(t, 0.9, cfg.Materials.Inline["dark_rubber"].Albedo[0], "inline definitions win")
	assert.True(t, cfg.Materials.HasMaterial("chalk"))

	chalk, err := cfg.Materials.Lookup("chalk")
	require.NoError(t, err)
	assert.Equal(t, "chalk", chalk.Name)
	assert.Equal(t, tracer.Albedo{Diffuse: 1}, chalk.Albedo)

	cfg.Materials.FromFile = filepath.Join(dir, "absent.json")
	assert.ErrorContains(t, cfg.LoadAndMerge(), "reading materials file")
}

func TestMaterialsLookup(t *testing.T) {
	m := &Materials{Inline: map[string]Material{
		"glass": {RefractiveIndex: 1.33, Albedo: [4]float64{0, 0.5, 0.1, 0.8}},
	}}
	glass, err := m.Lookup("glass")
	require.NoError(t, err)
	assert.Equal(t, 1.33, glass.RefractiveIndex, "inline shadows the preset")

	ivory, err := m.Lookup("ivory")
	require.NoError(t, err)
	assert.Equal(t, tracer.Ivory, ivory)

	_, err = m.Lookup("velvet")
	assert.ErrorContains(t, err, "undefined material 'velvet'")
	assert.False(t, m.HasMaterial("velvet"))
}

func TestResolvePaths(t *testing.T) {
	resolver := NewPathResolver("/scenes")
	assert.Equal(t, "/scenes/sky.jpg", resolver.ResolvePath("sky.jpg"))
	assert.Equal(t, "/abs/sky.jpg", resolver.ResolvePath("/abs/sky.jpg"))
	assert.Equal(t, "", resolver.ResolvePath(""))

	cfg := &SceneConfig{
		Input: Input{
			EnvironmentMap: EnvironmentMap{Path: "sky.jpg"},
			Mesh:           &Mesh{Path: "models/duck.obj"},
		},
		Materials: Materials{FromFile: "materials.json"},
	}
	require.NoError(t, cfg.ResolvePaths(resolver))
	assert.Equal(t, "/scenes/sky.jpg", cfg.Input.EnvironmentMap.Path)
	assert.Equal(t, "/scenes/models/duck.obj", cfg.Input.Mesh.Path)
	assert.Equal(t, "/scenes/materials.json", cfg.Materials.FromFile)
}

func TestCheckFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "duck.obj", "")
	cfg := &SceneConfig{
		Input: Input{
			EnvironmentMap: EnvironmentMap{Path: "sky.jpg"},
			Mesh:           &Mesh{Path: "duck.obj"},
		},
	}
	errs := cfg.CheckFiles(NewPathResolver(dir))
	assert.Equal(t, []string{"input.environment_map.path"}, fields(errs))
	assert.Contains(t, errs[0].Message, filepath.Join(dir, "sky.jpg"))
}

func TestBuildWithFiles(t *testing.T) {
	dir := t.TempDir()
	sky := image.NewNRGBA(image.Rect(0, 0, 8, 4))
	for i := range sky.Pix {
		sky.Pix[i] = 200
	}
	require.NoError(t, imaging.Save(sky, filepath.Join(dir, "sky.png")))
	writeFile(t, dir, "tri.obj", "v -1 -1 -5\nv 1 -1 -5\nv 0 1 -5\nf 1 2 3\n")
	path := writeFile(t, dir, "scene.yaml", `
input:
  environment_map:
    path: sky.png
  mesh:
    path: tri.obj
    material: ivory
camera: {width: 4, height: 3, fov_degrees: 60, position: [0, 0, 0]}
render: {output: out.png}
`)

	cfg, err := LoadFromFile(path, LoadOptions{ValidateImmediately: true, ResolvePaths: true})
	require.NoError(t, err)
	require.Empty(t, cfg.CheckFiles(NewPathResolver(dir)))

	scene, _, err := cfg.Build()
	require.NoError(t, err)
	assert.Equal(t, tracer.DefaultMaxDepth, scene.MaxDepth())
	assert.Equal(t, 8, scene.Environment().Width)

	hit, ok := scene.Intersect(tracer.V(0, 0, 0), tracer.V(0, 0, -1))
	require.True(t, ok)
	assert.Equal(t, tracer.CategoryMesh, hit.Category)
	assert.Equal(t, tracer.Ivory, hit.Material)
	assert.InDelta(t, 5, hit.T, 1e-9)
}

func TestBuildErrors(t *testing.T) {
	t.Run("missing_environment_map", func(t *testing.T) {
		cfg := &SceneConfig{Input: Input{EnvironmentMap: EnvironmentMap{Path: filepath.Join(t.TempDir(), "none.jpg")}}}
		_, _, err := cfg.Build()
		assert.ErrorContains(t, err, "loading environment map")
	})

	t.Run("missing_mesh", func(t *testing.T) {
		cfg := &SceneConfig{Input: Input{
			EnvironmentMap: EnvironmentMap{Gradient: []GradientStop{{Color: [3]float64{1, 1, 1}}}},
			Mesh:           &Mesh{Path: filepath.Join(t.TempDir(), "none.obj")},
		}}
		_, _, err := cfg.Build()
		assert.ErrorContains(t, err, "loading mesh")
	})

	t.Run("undefined_material", func(t *testing.T) {
		cfg := &SceneConfig{
			Input:   Input{EnvironmentMap: EnvironmentMap{Gradient: []GradientStop{{Color: [3]float64{1, 1, 1}}}}},
			Spheres: []Sphere{{Radius: 1, Material: "velvet"}},
		}
		_, _, err := cfg.Build()
		assert.ErrorContains(t, err, "spheres[0]")
	})
}

func TestSaveToFile(t *testing.T) {
	cfg, err := Default(LoadOptions{})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "saved.yaml")
	require.NoError(t, SaveToFile(cfg, path))
	assert.NotEmpty(t, cfg.Metadata.Timestamp)
	assert.NotEmpty(t, cfg.Metadata.GitCommit)

	loaded, err := LoadFromFile(path, LoadOptions{ValidateImmediately: true})
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
