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
	"time"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/notargets/gopt/model_problems"
	"github.com/notargets/gopt/optimize"
	"github.com/notargets/gopt/utils"
)

// benchCmd represents the bench command
var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run every compatible model against a method, report timing and memory",
	Run: func(cmd *cobra.Command, args []string) {
		method, _ := cmd.Flags().GetString("method")
		n, _ := cmd.Flags().GetInt("n")
		if prof, _ := cmd.Flags().GetBool("profile"); prof {
			defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
		}
		RunBench(method, n)
	},
}

func init() {
	rootCmd.AddCommand(benchCmd)
	benchCmd.Flags().StringP("method", "m", "lsq-exact", "optimization method to benchmark")
	benchCmd.Flags().IntP("n", "n", 8, "number of variables for resizable models")
	benchCmd.Flags().Bool("profile", false, "write a CPU profile to the current directory")
}

func RunBench(method string, n int) {
	m, err := optimize.Lookup(method)
	if err != nil {
		fmt.Printf("error: %s\nmethods: %v\n", err.Error(), optimize.Names())
		return
	}
	fmt.Printf("%-15s%-22s%15s%12s%12s%12s\n",
		"Model", "Status", "Fun", "Iterations", "nfev", "Elapsed")
	for _, name := range model_problems.Names() {
		model, err := model_problems.Get(name, n)
		if err != nil {
			panic(err)
		}
		if !compatible(m, model.Problem) {
			fmt.Printf("%-15s%-22s\n", name, "skipped")
			continue
		}
		start := time.Now()
		res, err := optimize.Solve(model.Problem, method, optimize.StopTol{},
			optimize.Options{}, 0, nil)
		if err != nil {
			fmt.Printf("%-15s%-22s\n", name, "error: "+err.Error())
			continue
		}
		fmt.Printf("%-15s%-22s%15.6e%12d%12d%12s\n", name,
			res.Status.String(), res.Fun, res.NIter, res.NFev,
			time.Since(start).Round(time.Microsecond).String())
	}
	fmt.Println(utils.GetMemUsage())
}

func compatible(m optimize.Method, prob *optimize.Problem) bool {
	switch {
	case m.Scalar && prob.Objective == nil:
		return false
	case !m.Scalar && prob.Residual == nil:
		return false
	case prob.Constraint != nil && !m.EqualityConstraints:
		return false
	case m.Hessian:
		_, ok := prob.Objective.(optimize.TwiceDifferentiable)
		return ok
	}
	return true
}
