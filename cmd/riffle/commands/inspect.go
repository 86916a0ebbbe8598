package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/cockroachdb/errors"
	"github.com/riffleml/riffle"
	"github.com/urfave/cli/v3"
)

// NewInspectCommand returns a cli.Command for "riffle inspect".
func NewInspectCommand() *cli.Command {
	cmd := cli.Command{
		Name:      "inspect",
		Usage:     "Print the step list of a container file.",
		UsageText: "riffle inspect file",
	}

	cmd.Action = func(ctx context.Context, cmd *cli.Command) error {
		path := cmd.Args().First()
		if path == "" {
			return errors.New(cmd.UsageText)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		c, err := riffle.Unmarshal(data)
		if err != nil {
			return err
		}

		return dumpContainer(os.Stdout, c)
	}

	return &cmd
}

func dumpContainer(w io.Writer, c *riffle.Container) error {
	fmt.Fprintf(w, "version: %d\n", c.Version)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STEP\tKIND\tDETAIL")
	for i, step := range c.Steps {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", i, step.Kind, stepDetail(step))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "output values: %v\n", c.OutputValueIndexes)
	fmt.Fprintf(w, "output exprs: %v\n", c.OutputExprIndexes)
	return nil
}

func stepDetail(step riffle.Step) string {
	var parts []string

	if step.Name != "" {
		parts = append(parts, fmt.Sprintf("name=%q", step.Name))
	}
	if step.CodecIndex != nil {
		parts = append(parts, fmt.Sprintf("codec=%d", *step.CodecIndex))
	}
	if len(step.Payload) > 0 {
		parts = append(parts, fmt.Sprintf("payload=%x", step.Payload))
	}
	if len(step.ValueInputs) > 0 {
		parts = append(parts, fmt.Sprintf("value_inputs=%v", step.ValueInputs))
	}
	if len(step.ExprInputs) > 0 {
		parts = append(parts, fmt.Sprintf("expr_inputs=%v", step.ExprInputs))
	}
	if step.Key != "" {
		parts = append(parts, fmt.Sprintf("key=%q", step.Key))
	}
	switch step.Kind {
	case riffle.StepLiteralNode, riffle.StepOperatorNode:
		parts = append(parts, fmt.Sprintf("value_index=%d", step.ValueIndex))
	case riffle.StepOutputValueIndex, riffle.StepOutputExprIndex:
		parts = append(parts, fmt.Sprintf("index=%d", step.Index))
	}

	return strings.Join(parts, " ")
}
