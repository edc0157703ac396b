// Command fdspace is a thin demo driver over the fdspace engine: select
// a bundled example by name and print its solution, optionally with
// search statistics attached (spec §4.9).
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fdspace/fdspace/pkg/fdspace"
)

func main() {
	problem := flag.String("problem", "queens", "example to run: queens|sendmoremoney|plus")
	n := flag.Int("n", 8, "size parameter (queens board size)")
	showStats := flag.Bool("stats", false, "attach a SpaceStats monitor and print it after the run")
	flag.Parse()

	var stats *fdspace.SpaceStats
	var opts []fdspace.SpaceOption
	if *showStats {
		stats = fdspace.NewSpaceStats()
		opts = append(opts, fdspace.WithMonitor(stats))
	}

	var err error
	switch *problem {
	case "queens":
		err = runQueens(*n, opts...)
	case "sendmoremoney":
		err = runSendMoreMoney(opts...)
	case "plus":
		err = runPlus(opts...)
	default:
		fmt.Fprintf(os.Stderr, "unknown -problem %q (want queens|sendmoremoney|plus)\n", *problem)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if stats != nil {
		fmt.Println(stats)
	}
}

func runPlus(opts ...fdspace.SpaceOption) error {
	sp := fdspace.NewSpace(opts...)
	X, Y, Z := fdspace.Name("X"), fdspace.Name("Y"), fdspace.Name("Z")
	if _, err := sp.Num(X, 3); err != nil {
		return err
	}
	if _, err := sp.Decl(Y); err != nil {
		return err
	}
	if _, err := sp.Num(Z, 10); err != nil {
		return err
	}
	fdspace.PostPlus(sp, X, Y, Z)
	sp.DistributeNaive([]fdspace.VarID{X, Y, Z})

	search := fdspace.NewDepthFirst(sp)
	result := search.Next()
	if result.Status != "solved" {
		fmt.Println("no solution found")
		return nil
	}
	sol := result.Space.Solution()
	fmt.Printf("X=%d Y=%d Z=%d\n", sol["X"].Value, sol["Y"].Value, sol["Z"].Value)
	return nil
}

func runSendMoreMoney(opts ...fdspace.SpaceOption) error {
	sp := fdspace.NewSpace(opts...)
	letters := []string{"S", "E", "N", "D", "M", "O", "R", "Y"}
	names := make([]fdspace.VarID, len(letters))
	for i, l := range letters {
		names[i] = fdspace.Name(l)
	}
	if _, err := sp.DeclAll(names, fdspace.Range(0, 9)); err != nil {
		return err
	}
	S, E, N, D := fdspace.Name("S"), fdspace.Name("E"), fdspace.Name("N"), fdspace.Name("D")
	M, O, R, Y := fdspace.Name("M"), fdspace.Name("O"), fdspace.Name("R"), fdspace.Name("Y")
	if err := sp.MustVar(S).Constrain(fdspace.Range(1, 9)); err != nil {
		return err
	}
	if err := sp.MustVar(M).Constrain(fdspace.Range(1, 9)); err != nil {
		return err
	}

	fdspace.Distinct(sp, names)

	send, err := fdspace.PostWSum(sp, []int{1000, 100, 10, 1}, []fdspace.VarID{S, E, N, D})
	if err != nil {
		return err
	}
	more, err := fdspace.PostWSum(sp, []int{1000, 100, 10, 1}, []fdspace.VarID{M, O, R, E})
	if err != nil {
		return err
	}
	money, err := fdspace.PostWSum(sp, []int{10000, 1000, 100, 10, 1}, []fdspace.VarID{M, O, N, E, Y})
	if err != nil {
		return err
	}
	fdspace.PostPlus(sp, send, more, money)

	sp.DistributeFailFirst(names)

	search := fdspace.NewDepthFirst(sp, fdspace.SolveForVariables(names))
	result := search.Next()
	if result.Status != "solved" {
		fmt.Println("no solution found")
		return nil
	}
	sol := result.Space.Solution()
	for _, l := range letters {
		fmt.Printf("%s=%d ", l, sol[l].Value)
	}
	fmt.Println()
	return nil
}

func runQueens(n int, opts ...fdspace.SpaceOption) error {
	sp := fdspace.NewSpace(opts...)
	cols := make([]fdspace.VarID, n)
	for i := range cols {
		cols[i] = fdspace.Name(fmt.Sprintf("col%d", i))
	}
	if _, err := sp.DeclAll(cols, fdspace.Range(0, n-1)); err != nil {
		return err
	}
	fdspace.Distinct(sp, cols)

	diagUp := make([]fdspace.VarID, n)
	diagDown := make([]fdspace.VarID, n)
	for i := range cols {
		up, err := sp.Konst(i)
		if err != nil {
			return err
		}
		down, err := sp.Konst(n - 1 - i)
		if err != nil {
			return err
		}
		diagUp[i] = fdspace.PostPlus(sp, cols[i], up)
		diagDown[i] = fdspace.PostPlus(sp, cols[i], down)
	}
	fdspace.Distinct(sp, diagUp)
	fdspace.Distinct(sp, diagDown)

	sp.DistributeSplit(cols)

	search := fdspace.NewDepthFirst(sp, fdspace.SolveForVariables(cols))
	result := search.Next()
	if result.Status != "solved" {
		fmt.Println("no solution found")
		return nil
	}
	board := result.Space.Solution()
	for i := range cols {
		row := make([]byte, n)
		for j := range row {
			row[j] = '.'
		}
		row[board[cols[i].String()].Value] = 'Q'
		fmt.Println(string(row))
	}
	return nil
}
