package main

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/born-ml/ndview/internal/shape"
	"github.com/born-ml/ndview/internal/tensor"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

const version = "v0.1.0-dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ndview",
		Short:         "Inspect N-dimensional shapes, strides and views",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	klogFlags := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(klogFlags)
	root.PersistentFlags().AddGoFlagSet(klogFlags)

	root.AddCommand(newVersionCmd(), newOffsetsCmd(), newTransposeCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ndview %s\n", version)
		},
	}
}

func newOffsetsCmd() *cobra.Command {
	var extents, strides, order string
	cmd := &cobra.Command{
		Use:   "offsets",
		Short: "Print the storage offsets a shape visits in canonical order",
		Example: `  ndview offsets --extents 2,3 --strides 6,2
  ndview offsets --extents 3,4 --order F`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := buildShape(extents, strides, order)
			if err != nil {
				return err
			}
			return printOffsets(cmd.OutOrStdout(), s)
		},
	}
	cmd.Flags().StringVar(&extents, "extents", "", "comma-separated extents, e.g. 2,3,4")
	cmd.Flags().StringVar(&strides, "strides", "", "comma-separated strides (default: canonical for --order)")
	cmd.Flags().StringVar(&order, "order", "C", "storage order: C (row-major) or F (column-major)")
	_ = cmd.MarkFlagRequired("extents")
	return cmd
}

func newTransposeCmd() *cobra.Command {
	var extents, perm, dtype string
	cmd := &cobra.Command{
		Use:     "transpose",
		Short:   "Print an index-filled array transposed by a permutation",
		Example: `  ndview transpose --extents 2,3,4 --perm 2,1,0 --dtype float64`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := parseInts(extents)
			if err != nil {
				return err
			}
			p, err := parseInts(perm)
			if err != nil {
				return err
			}
			s, err := shape.New(shape.RowMajor, e...)
			if err != nil {
				return err
			}
			dt, err := tensor.ParseDataType(dtype)
			if err != nil {
				return err
			}
			grid, err := transposedGrid(s, p, dt)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), grid)
			return err
		},
	}
	cmd.Flags().StringVar(&extents, "extents", "", "comma-separated extents, e.g. 2,3,4")
	cmd.Flags().StringVar(&perm, "perm", "", "comma-separated axis permutation (default: reverse)")
	cmd.Flags().StringVar(&dtype, "dtype", "float64", "element type: float32, float64, int32, int64, uint8")
	_ = cmd.MarkFlagRequired("extents")
	return cmd
}

func buildShape(extents, strides, order string) (shape.Shape, error) {
	e, err := parseInts(extents)
	if err != nil {
		return shape.Shape{}, err
	}
	o, err := shape.ParseOrder(order)
	if err != nil {
		return shape.Shape{}, err
	}
	if strides == "" {
		return shape.New(o, e...)
	}
	st, err := parseInts(strides)
	if err != nil {
		return shape.Shape{}, err
	}
	if len(e) > shape.MaxRank || len(st) > shape.MaxRank {
		return shape.Shape{}, errors.Wrapf(shape.ErrInvalidShape, "rank exceeds %d", shape.MaxRank)
	}
	return shape.WithStrides(shape.MakeDims(e...), shape.MakeDims(st...))
}

func printOffsets(w io.Writer, s shape.Shape) error {
	_, err := fmt.Fprintf(w, "%v\ncount: %d\nsequential: %t\ndense: %t\noffsets: %v\n",
		s, s.Count(), s.IsSequential(), s.IsDense(), slices.Collect(s.Offsets()))
	return err
}

// transposedGrid dispatches on the runtime data type.
func transposedGrid(s shape.Shape, perm []int, dt tensor.DataType) (any, error) {
	switch dt {
	case tensor.Float32:
		return transposeIndexed[float32](s, perm)
	case tensor.Float64:
		return transposeIndexed[float64](s, perm)
	case tensor.Int32:
		return transposeIndexed[int32](s, perm)
	case tensor.Int64:
		return transposeIndexed[int64](s, perm)
	case tensor.Uint8:
		return transposeIndexed[uint8](s, perm)
	default:
		return nil, errors.Errorf("data type %s cannot hold index values", dt)
	}
}

func transposeIndexed[T tensor.Number](s shape.Shape, perm []int) (any, error) {
	t, err := tensor.Indexed[T](s).Transposed(perm...)
	if err != nil {
		return nil, err
	}
	return t.Array(), nil
}

func parseInts(csv string) ([]int, error) {
	csv = strings.TrimSpace(csv)
	if csv == "" {
		return nil, nil
	}
	parts := strings.Split(csv, ",")
	out := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, errors.Wrapf(err, "parse %q", csv)
		}
		out[i] = n
	}
	return out, nil
}
