package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marcos-nsantos/geocrop/internal/domain/entity"
)

const dsnFlag = "postgis-dsn"

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <source>",
		Short: "Print format, CRS, schema and extent of a dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dsn, _ := cmd.Flags().GetString(dsnFlag)
			registry, closeRegistry, err := openRegistry(cmd.Context(), dsn)
			if err != nil {
				return err
			}
			defer closeRegistry()

			store, err := registry.StoreFor(args[0])
			if err != nil {
				return err
			}
			ds, err := store.Read(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printDataset(cmd.OutOrStdout(), store.Format(), ds)
			return nil
		},
	}
	cmd.Flags().String(dsnFlag, "", "postgres connection string for postgis: sources")
	return cmd
}

func printDataset(w io.Writer, format string, ds *entity.Dataset) {
	fmt.Fprintf(w, "name:     %s\n", ds.Name)
	fmt.Fprintf(w, "format:   %s\n", format)
	fmt.Fprintf(w, "crs:      %s\n", ds.CRS)
	fmt.Fprintf(w, "geometry: %s\n", ds.Kind)
	fmt.Fprintf(w, "features: %d\n", ds.Len())

	if box, ok := ds.Extent(); ok {
		fmt.Fprintf(w, "extent:   %g,%g .. %g,%g\n", box.Min.Lat, box.Min.Lng, box.Max.Lat, box.Max.Lng)
	} else {
		fmt.Fprintln(w, "extent:   empty")
	}

	fields := make([]string, 0, len(ds.Schema))
	for _, f := range ds.Schema {
		fields = append(fields, fmt.Sprintf("%s:%s", f.Name, f.Type))
	}
	fmt.Fprintf(w, "schema:   %s\n", strings.Join(fields, ", "))
}
