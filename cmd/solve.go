/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io/ioutil"
	"log/slog"
	"math"
	"os"
	"sort"
	"time"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/gopt/InputParameters"
	"github.com/notargets/gopt/model_problems"
	"github.com/notargets/gopt/optimize"
	"github.com/notargets/gopt/utils"
)

type SolveRun struct {
	ParamFile string
	Graph     bool
	Delay     time.Duration
	Profile   bool
	Verbose   int
}

// solveCmd represents the solve command
var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Minimize a model problem with a registered method",
	Long: `
Minimizes one of the built in model problems using any registered method,
optionally under linear equality constraints read from a YAML parameter file,

gopt solve -o rosenbrock -n 8 -m lsq-exact -v 2`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		sr := &SolveRun{}
		if sr.ParamFile, err = cmd.Flags().GetString("inputParametersFile"); err != nil {
			panic(err)
		}
		sr.Graph, _ = cmd.Flags().GetBool("graph")
		dr, _ := cmd.Flags().GetInt("delay")
		sr.Delay = time.Duration(dr) * time.Millisecond
		sr.Profile, _ = cmd.Flags().GetBool("profile")
		sr.Verbose = viper.GetInt("verbose")
		op := processSolveInput(sr, cmd)
		RunSolve(sr, op)
	},
}

func init() {
	rootCmd.AddCommand(solveCmd)
	solveCmd.Flags().StringP("inputParametersFile", "I", "", "YAML file for input parameters like:\n\t- Method\n\t- FTol\n\t- FixVariables")
	solveCmd.Flags().StringP("model", "o", "rosenbrock", "model problem to minimize, see 'gopt methods' for the list")
	solveCmd.Flags().IntP("n", "n", 2, "number of variables in the model problem")
	solveCmd.Flags().StringP("method", "m", "lsq-exact", "optimization method to use")
	solveCmd.Flags().BoolP("graph", "g", false, "display a convergence graph after solving")
	solveCmd.Flags().IntP("delay", "d", 5000, "milliseconds to keep the graph window open")
	solveCmd.Flags().Bool("profile", false, "write a CPU profile to the current directory")
}

func processSolveInput(sr *SolveRun, cmd *cobra.Command) (op *InputParameters.OptimizationParameters) {
	var (
		err error
	)
	op = &InputParameters.OptimizationParameters{}
	if len(sr.ParamFile) != 0 {
		var data []byte
		if data, err = ioutil.ReadFile(sr.ParamFile); err != nil {
			panic(err)
		}
		if err = op.Parse(data); err != nil {
			panic(err)
		}
	}
	// Flags fill whatever the parameter file left unset
	if len(op.Model) == 0 {
		op.Model, _ = cmd.Flags().GetString("model")
	}
	if op.Dimension == 0 {
		op.Dimension, _ = cmd.Flags().GetInt("n")
	}
	if len(op.Method) == 0 {
		op.Method, _ = cmd.Flags().GetString("method")
	}
	if op.Verbose != 0 {
		sr.Verbose = op.Verbose
	}
	if sr.Verbose > 0 {
		op.Print()
	}
	return
}

func RunSolve(sr *SolveRun, op *InputParameters.OptimizationParameters) {
	if sr.Profile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}
	model, err := model_problems.Get(op.Model, op.Dimension)
	if err != nil {
		fmt.Printf("error: %s\navailable models: %v\n", err.Error(), model_problems.Names())
		os.Exit(1)
	}
	prob := model.Problem
	prob.JacScale = op.JacScale
	if len(op.X0) != 0 {
		if len(op.X0) != prob.X0.Len() {
			fmt.Printf("error: X0 has %d entries, model %q has %d variables\n",
				len(op.X0), op.Model, prob.X0.Len())
			os.Exit(1)
		}
		prob.X0 = utils.NewVector(len(op.X0), op.X0)
	}
	if len(op.XScale) != 0 {
		if len(op.XScale) != prob.X0.Len() {
			fmt.Printf("error: XScale has %d entries, model %q has %d variables\n",
				len(op.XScale), op.Model, prob.X0.Len())
			os.Exit(1)
		}
		prob.XScale = utils.NewVector(len(op.XScale), op.XScale)
	}
	if lc := yamlConstraint(op, prob.X0.Len()); lc != nil {
		prob.Constraint = lc
	}
	stop := optimize.StopTol{
		FTol:        op.FTol,
		XTol:        op.XTol,
		GTol:        op.GTol,
		MaxIter:     op.MaxIterations,
		MaxFunEvals: op.MaxFunEvals,
	}
	opts := optimize.Options{
		InitialTrustRadius: op.InitialTrustRadius,
		MaxTrustRadius:     op.MaxTrustRadius,
		MaxTrustRatio:      op.MaxTrustRatio,
		GeodesicAccelRatio: op.GeodesicAcceleration,
		LearningRate:       op.LearningRate,
		DecayRate:          op.DecayRate,
	}
	start := time.Now()
	res, err := optimize.Solve(prob, op.Method, stop, opts, sr.Verbose, nil)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	slog.Info("solve finished", "model", op.Model, "method", op.Method,
		"status", res.Status.String(), "elapsed", time.Since(start))
	printResult(res, model)
	if sr.Graph {
		plotConvergence(res.AllCost, sr.Delay)
	}
}

// yamlConstraint assembles the optional FixVariables and FixSum entries
// into a single stacked equality constraint.
func yamlConstraint(op *InputParameters.OptimizationParameters, n int) *optimize.LinearConstraint {
	var (
		rows = len(op.FixVariables)
	)
	if op.FixSum != nil {
		rows++
	}
	if rows == 0 {
		return nil
	}
	var (
		a = utils.NewDOK(rows, n)
		b = utils.NewVector(rows)
	)
	idx := make([]int, 0, len(op.FixVariables))
	for i := range op.FixVariables {
		if i < 0 || i >= n {
			fmt.Printf("error: FixVariables index %d outside [0,%d)\n", i, n)
			os.Exit(1)
		}
		idx = append(idx, i)
	}
	sort.Ints(idx)
	for k, i := range idx {
		a.Set(k, i, 1)
		b.DataP[k] = op.FixVariables[i]
	}
	if op.FixSum != nil {
		for j := 0; j < n; j++ {
			a.Set(rows-1, j, 1)
		}
		b.DataP[rows-1] = *op.FixSum
	}
	lc, err := optimize.NewLinearConstraint(a.ToCSR().M, b)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	return lc
}

func printResult(res *optimize.Result, model model_problems.Model) {
	fmt.Printf("%12s: %s\n", "Status", res.Status.String())
	fmt.Printf("%12s: %s\n", "Message", res.Message)
	fmt.Printf("%12s: %.6e\n", "Fun", res.Fun)
	fmt.Printf("%12s: %.6e\n", "Optimality", res.Optimality)
	fmt.Printf("%12s: %d\n", "Iterations", res.NIter)
	fmt.Printf("%12s: %d nfev, %d njev, %d ngev, %d nhev\n", "Evaluations",
		res.NFev, res.NJev, res.NGev, res.NHev)
	if res.X.Len() <= 10 {
		fmt.Printf("%12s: %v\n", "X", res.X.DataP)
	}
	if model.XStar.V != nil {
		dx := res.X.Copy().Subtract(model.XStar)
		fmt.Printf("%12s: %.6e\n", "|X-XStar|", dx.NormInf())
	}
}

func plotConvergence(allCost []float64, delay time.Duration) {
	if len(allCost) < 2 {
		return
	}
	var (
		x    = make([]float64, len(allCost))
		f    = make([]float64, len(allCost))
		fmin = math.Inf(1)
		fmax = math.Inf(-1)
	)
	for i, c := range allCost {
		x[i] = float64(i)
		f[i] = math.Log10(math.Max(c, 1.e-16))
		fmin = math.Min(fmin, f[i])
		fmax = math.Max(fmax, f[i])
	}
	lc := utils.NewLineChart(1920, 1080, 0, float64(len(allCost)-1), fmin-0.5, fmax+0.5)
	lc.Plot(delay, x, f, -0.7, "log10(cost)")
}
