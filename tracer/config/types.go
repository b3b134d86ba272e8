package config

// SceneConfig represents the complete description of a render: scene, camera and output
type SceneConfig struct {
	Metadata     Metadata      `yaml:"metadata"`
	Input        Input         `yaml:"input"`
	Materials    Materials     `yaml:"materials"`
	Camera       Camera        `yaml:"camera"`
	Render       Render        `yaml:"render"`
	Spheres      []Sphere      `yaml:"spheres,omitempty"`
	Composite    *Composite    `yaml:"composite,omitempty"`
	Checkerboard *Checkerboard `yaml:"checkerboard,omitempty"`
	Lights       []Light       `yaml:"lights"`
}

type Metadata struct {
	Timestamp string `yaml:"timestamp"` // YYYY-MM-DD HH:MM:SS in UTC
	GitCommit string `yaml:"git_commit"`
}

type Input struct {
	EnvironmentMap EnvironmentMap `yaml:"environment_map"`
	Mesh           *Mesh          `yaml:"mesh,omitempty"`
}

// EnvironmentMap is either an image file or a procedural gradient, never both
type EnvironmentMap struct {
	Path     string         `yaml:"path,omitempty"`
	Gradient []GradientStop `yaml:"gradient,omitempty"`
}

type GradientStop struct {
	Colatitude float64    `yaml:"colatitude"` // degrees from straight up
	Color      [3]float64 `yaml:"color"`
}

type Mesh struct {
	Path  string  `yaml:"path"`
	Scale float64 `yaml:"scale,omitempty"`
	// Optional box the mesh is fitted into, as [min, max]
	FitInside *[2][3]float64 `yaml:"fit_inside,omitempty"`
	// Material every triangle is shaded with. Defaults to glass.
	Material string `yaml:"material,omitempty"`
}

type Materials struct {
	Inline   map[string]Material `yaml:"inline,omitempty"`
	FromFile string              `yaml:"from_file,omitempty"`
}

type Material struct {
	RefractiveIndex  float64    `yaml:"refractive_index" json:"refractive_index"`
	Albedo           [4]float64 `yaml:"albedo" json:"albedo"` // diffuse, specular, reflect, refract
	DiffuseColor     [3]float64 `yaml:"diffuse_color" json:"diffuse_color"`
	SpecularExponent float64    `yaml:"specular_exponent" json:"specular_exponent"`
}

type Camera struct {
	Width      int        `yaml:"width"`
	Height     int        `yaml:"height"`
	FOVDegrees float64    `yaml:"fov_degrees"`
	Position   [3]float64 `yaml:"position"`
}

type Render struct {
	MaxDepth int    `yaml:"max_depth"`
	Workers  int    `yaml:"workers,omitempty"` // 0 uses every CPU
	Output   string `yaml:"output"`
	// Longest side of an optional preview image written next to the output
	Thumbnail int `yaml:"thumbnail,omitempty"`
}

type Sphere struct {
	Center   [3]float64 `yaml:"center"`
	Radius   float64    `yaml:"radius"`
	Material string     `yaml:"material"`
}

type Composite struct {
	A Sphere `yaml:"a"`
	B Sphere `yaml:"b"`
}

type Checkerboard struct {
	Height  float64    `yaml:"height"`
	XExtent float64    `yaml:"x_extent"`
	ZNear   float64    `yaml:"z_near"`
	ZFar    float64    `yaml:"z_far"`
	Even    [3]float64 `yaml:"even"`
	Odd     [3]float64 `yaml:"odd"`
}

type Light struct {
	Position  [3]float64 `yaml:"position"`
	Intensity float64    `yaml:"intensity"`
}
