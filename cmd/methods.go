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

	"github.com/spf13/cobra"

	"github.com/notargets/gopt/model_problems"
	"github.com/notargets/gopt/optimize"
)

// methodsCmd represents the methods command
var methodsCmd = &cobra.Command{
	Use:   "methods",
	Short: "List the registered optimization methods and their capabilities",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%-15s%-8s%-8s%-8s%-12s%-8s\n",
			"Method", "Scalar", "EqCon", "InCon", "Stochastic", "Hessian")
		for _, name := range optimize.Names() {
			m, err := optimize.Lookup(name)
			if err != nil {
				panic(err)
			}
			fmt.Printf("%-15s%-8v%-8v%-8v%-12v%-8v\n", m.Name,
				m.Scalar, m.EqualityConstraints, m.InequalityConstraints,
				m.Stochastic, m.Hessian)
		}
		fmt.Printf("\nModels: %v\n", model_problems.Names())
	},
}

func init() {
	rootCmd.AddCommand(methodsCmd)
}
