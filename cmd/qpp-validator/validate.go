package main

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/davecgh/go-spew/spew"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	qv "github.com/goqpp/validator"
	"github.com/goqpp/validator/engine"
	"github.com/goqpp/validator/measure"
	"github.com/goqpp/validator/node"
	"github.com/goqpp/validator/worker"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Validate one or more decoded submission trees",
	Long: `Validate reads decoded submission trees (the JSON or YAML form emitted
by the decoder) and checks them against the measures data file. With
multiple files the documents are validated in parallel and a summary with
duration statistics is printed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := measure.LoadStore(measuresFile)
		if err != nil {
			return err
		}

		eng := engine.New(store,
			qv.WithSubPopulationExclusions(exclusions...),
			qv.WithMaxErrors(maxErrors),
			qv.WithWorkerCount(workerCount),
		)

		if len(args) == 1 {
			return validateOne(cmd.Context(), eng, args[0])
		}
		return validateBatch(cmd.Context(), eng, args)
	},
}

func validateOne(ctx context.Context, eng *engine.Engine, path string) error {
	root, err := loadDocument(path)
	if err != nil {
		return err
	}

	result, err := eng.Validate(ctx, root)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	defer result.Release()

	printDetails(path, result)
	if !result.Valid() {
		os.Exit(1)
	}
	return nil
}

func validateBatch(ctx context.Context, eng *engine.Engine, paths []string) error {
	pool := worker.NewPool(eng, workerCount)

	var progress *mpb.Progress
	var bar *mpb.Bar
	if !noProgress {
		progress = mpb.New(mpb.WithWidth(64))
		bar = progress.New(int64(len(paths)),
			mpb.BarStyle(),
			mpb.PrependDecorators(
				decor.Name("validate", decor.WC{W: 9, C: decor.DindentRight}),
				decor.CountersNoUnit("%d / %d"),
			),
			mpb.AppendDecorators(decor.Percentage()),
		)
	}

	// Submission runs concurrently with result draining so the pool's
	// bounded channels never deadlock on large batches.
	var undecodable atomic.Int64
	go func() {
		for _, path := range paths {
			root, err := loadDocument(path)
			if err != nil {
				undecodable.Add(1)
				fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
				if bar != nil {
					bar.Increment()
				}
				continue
			}
			pool.Submit(worker.Job{ID: path, Root: root})
		}
		pool.Close()
	}()

	var (
		durations []float64
		invalid   int
		aborted   int
	)
	for jr := range pool.Results() {
		if bar != nil {
			bar.Increment()
		}
		if jr.Error != nil {
			aborted++
			fmt.Fprintf(os.Stderr, "%s: %v\n", jr.ID, jr.Error)
			continue
		}
		durations = append(durations, jr.Duration.Seconds())
		if !jr.Result.Valid() {
			invalid++
			printDetails(jr.ID, jr.Result)
		}
		jr.Result.Release()
	}
	if progress != nil {
		progress.Wait()
	}
	aborted += int(undecodable.Load())

	stats := calculateDurationStatistics(durations)
	fmt.Printf("\nDocuments       : %d\n", len(paths))
	fmt.Printf("Invalid         : %d\n", invalid)
	fmt.Printf("Aborted         : %d\n", aborted)
	fmt.Printf("Duration mean   : %s\n", stats.Mean)
	fmt.Printf("Duration q95    : %s\n", stats.Q95)
	fmt.Printf("Duration max    : %s\n", stats.Max)

	if invalid > 0 || aborted > 0 {
		os.Exit(1)
	}
	return nil
}

func printDetails(id string, result *qv.Result) {
	details := result.Details()
	if len(details) == 0 {
		fmt.Printf("%s: valid\n", id)
		return
	}
	fmt.Printf("%s: %d finding(s)\n", id, len(details))
	for _, d := range details {
		fmt.Printf("  %s\n", d)
	}
}

// document is the decoder's serialized tree form.
type document struct {
	Template string            `json:"template" yaml:"template"`
	Values   map[string]string `json:"values" yaml:"values"`
	Children []document        `json:"children" yaml:"children"`
}

// loadDocument reads a decoded tree file. goccy/go-yaml accepts both YAML
// and the decoder's JSON output.
func loadDocument(path string) (*node.Node, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if dumpTree {
		spew.Fdump(os.Stderr, doc)
	}
	return buildTree(doc), nil
}

func buildTree(doc document) *node.Node {
	n := node.New(node.TemplateID(doc.Template))
	for name, value := range doc.Values {
		n.PutValue(name, value)
	}
	for _, child := range doc.Children {
		n.Append(buildTree(child))
	}
	return n
}
