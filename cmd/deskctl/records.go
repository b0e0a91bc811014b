package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/deskboard/internal/dashboard"
)

var (
	setFields []string
	dataJSON  string
)

var getCmd = &cobra.Command{
	Use:   "get <resource> <id>",
	Short: "Show one record",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := commandContext(cmd)

		t, err := table(args[0])
		if err != nil {
			return err
		}

		// A loaded page lets the detail fall back to the listed copy.
		t.Refresh(ctx)

		d := t.Get(ctx, args[1])
		if !d.Success {
			return fmt.Errorf("get %s/%s: %s", args[0], args[1], d.Error)
		}

		if d.Fallback {
			fmt.Printf("warning: showing the listed copy, detail request failed: %s\n", d.Error)
		}

		return printJSON(d.Record)
	},
}

var createCmd = &cobra.Command{
	Use:   "create <resource>",
	Short: "Create a record",
	Long: `Create posts a new record. Fields are given with --set key=value, or as
a JSON object with --data. Values that parse as JSON numbers or booleans are
sent as such.

Example:
  deskctl create campaigns --set name=Autumn --set channel=email --set budget=750
  deskctl create leaves --data '{"employeeId":3,"type":"sick","startDate":"2026-05-04","endDate":"2026-05-05"}'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := commandContext(cmd)

		t, err := table(args[0])
		if err != nil {
			return err
		}

		payload, err := parsePayload(dataJSON, setFields)
		if err != nil {
			return err
		}

		return report("created", t.Create(ctx, payload))
	},
}

var updateCmd = &cobra.Command{
	Use:   "update <resource> <id>",
	Short: "Update fields of a record",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := commandContext(cmd)

		t, err := table(args[0])
		if err != nil {
			return err
		}

		payload, err := parsePayload(dataJSON, setFields)
		if err != nil {
			return err
		}

		if len(payload) == 0 {
			return errors.New("nothing to update: pass --set or --data")
		}

		return report("updated", t.Update(ctx, args[1], payload))
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <resource> <id>",
	Short: "Delete a record",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := commandContext(cmd)

		t, err := table(args[0])
		if err != nil {
			return err
		}

		t.Refresh(ctx)

		if err := report("deleted", t.Delete(ctx, args[1])); err != nil {
			return err
		}

		v := t.View()
		fmt.Printf("%s now holds %d record(s)\n", t.Name(), v.Total)

		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{createCmd, updateCmd} {
		cmd.Flags().StringArrayVar(&setFields, "set", nil, "field to send, as key=value (repeatable)")
		cmd.Flags().StringVar(&dataJSON, "data", "", "JSON object to send")
	}
}

func parsePayload(data string, sets []string) (map[string]any, error) {
	payload := make(map[string]any)

	if data != "" {
		if err := json.Unmarshal([]byte(data), &payload); err != nil {
			return nil, fmt.Errorf("parse --data: %w", err)
		}

		if payload == nil {
			return nil, errors.New("parse --data: expected a JSON object")
		}
	}

	for _, kv := range sets {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid --set %q, expected key=value", kv)
		}

		payload[strings.TrimSpace(key)] = scalar(value)
	}

	return payload, nil
}

// scalar keeps numbers and booleans typed; anything else is sent as a string.
func scalar(s string) any {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err == nil {
		switch v.(type) {
		case float64, bool:
			return v
		}
	}

	return s
}

func report(verb string, out dashboard.Outcome) error {
	if !out.Success {
		if len(out.FieldErrors) == 0 {
			return errors.New(out.Error)
		}

		var sb strings.Builder
		sb.WriteString(out.Error)

		for _, field := range slices.Sorted(maps.Keys(out.FieldErrors)) {
			fmt.Fprintf(&sb, "\n  %s: %s", field, out.FieldErrors[field])
		}

		return errors.New(sb.String())
	}

	msg := out.Message
	if msg == "" {
		msg = verb
	}

	fmt.Println(msg)

	return nil
}
