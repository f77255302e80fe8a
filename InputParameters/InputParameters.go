package InputParameters

import (
	"fmt"
	"sort"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file
type OptimizationParameters struct {
	Title                string          `yaml:"Title"`
	Model                string          `yaml:"Model"`
	Dimension            int             `yaml:"Dimension"`
	Method               string          `yaml:"Method"`
	X0                   []float64       `yaml:"X0"` // overrides the model starting point
	FTol                 float64         `yaml:"FTol"`
	XTol                 float64         `yaml:"XTol"`
	GTol                 float64         `yaml:"GTol"`
	MaxIterations        int             `yaml:"MaxIterations"`
	MaxFunEvals          int             `yaml:"MaxFunEvals"`
	InitialTrustRadius   float64         `yaml:"InitialTrustRadius"`
	MaxTrustRadius       float64         `yaml:"MaxTrustRadius"`
	MaxTrustRatio        float64         `yaml:"MaxTrustRatio"` // radius cap relative to the initial radius
	GeodesicAcceleration float64         `yaml:"GeodesicAcceleration"` // ratio of the trust radius, 0 disables
	LearningRate         float64         `yaml:"LearningRate"`
	DecayRate            float64         `yaml:"DecayRate"`
	XScale               []float64       `yaml:"XScale"` // per variable characteristic scales
	JacScale             bool            `yaml:"JacScale"`
	FixVariables         map[int]float64 `yaml:"FixVariables"` // Key is the variable index, value is the pinned value
	FixSum               *float64        `yaml:"FixSum"`
	Verbose              int             `yaml:"Verbose"`
}

func (op *OptimizationParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, op)
}

func (op *OptimizationParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", op.Title)
	fmt.Printf("[%s]\t\t= Model\n", op.Model)
	fmt.Printf("[%d]\t\t\t\t= Dimension\n", op.Dimension)
	fmt.Printf("[%s]\t\t= Method\n", op.Method)
	fmt.Printf("%8.1e\t\t= FTol\n", op.FTol)
	fmt.Printf("%8.1e\t\t= XTol\n", op.XTol)
	fmt.Printf("%8.1e\t\t= GTol\n", op.GTol)
	fmt.Printf("[%d]\t\t\t\t= MaxIterations\n", op.MaxIterations)
	if len(op.X0) != 0 {
		fmt.Printf("%v\t\t= X0\n", op.X0)
	}
	if len(op.XScale) != 0 {
		fmt.Printf("%v\t\t= XScale\n", op.XScale)
	}
	if len(op.FixVariables) != 0 {
		keys := make([]int, 0, len(op.FixVariables))
		for k := range op.FixVariables {
			keys = append(keys, k)
		}
		sort.Ints(keys)
		for _, key := range keys {
			fmt.Printf("FixVariables[%d] = %v\n", key, op.FixVariables[key])
		}
	}
	if op.FixSum != nil {
		fmt.Printf("%8.5f\t\t= FixSum\n", *op.FixSum)
	}
}
