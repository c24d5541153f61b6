package main

import (
	"bufio"
	"fmt"
	"io"
	"net/url"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	var wheres []string
	var orderBy string
	var desc bool
	var limit int

	watchCmd := &cobra.Command{
		Use:   "watch COLLECTION [ID]",
		Short: "Stream live snapshots of a collection or one record",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validCollection(args[0]); err != nil {
				return err
			}
			path := "/api/" + args[0] + "/watch"
			if len(args) == 2 {
				path = "/api/" + args[0] + "/" + args[1] + "/watch"
			}

			q := url.Values{}
			for _, w := range wheres {
				q.Add("where", w)
			}
			if orderBy != "" {
				q.Set("orderBy", orderBy)
			}
			if desc {
				q.Set("desc", "true")
			}
			if limit > 0 {
				q.Set("limit", fmt.Sprint(limit))
			}

			resp, err := client().R().
				SetDoNotParseResponse(true).
				SetQueryParamsFromValues(q).
				Get(path)
			if err != nil {
				return err
			}
			body := resp.RawBody()
			defer func() { _ = body.Close() }()
			if resp.StatusCode() != 200 {
				data, _ := io.ReadAll(body)
				return fmt.Errorf("http %d: %s", resp.StatusCode(), string(data))
			}
			return streamEvents(body, os.Stdout)
		},
	}
	watchCmd.Flags().StringArrayVarP(&wheres, "where", "w", nil, "Filter as field|op|value (repeatable)")
	watchCmd.Flags().StringVar(&orderBy, "order-by", "", "Sort field")
	watchCmd.Flags().BoolVar(&desc, "desc", false, "Sort descending")
	watchCmd.Flags().IntVar(&limit, "limit", 0, "Max records per snapshot")
	rootCmd.AddCommand(watchCmd)
}

// streamEvents copies SSE data lines to out until the stream closes.
func streamEvents(r io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		_, _ = fmt.Fprintln(out, line)
	}
	return scanner.Err()
}
