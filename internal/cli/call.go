package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/akolliy1/apartment-search-llm/internal/mcp"
)

// newCallCmd creates the call command
func newCallCmd(opts *rootOptions) *cobra.Command {
	var (
		params string
		output string
	)

	cmd := &cobra.Command{
		Use:   "call <tool>",
		Short: "Invoke one tool and print the response",
		Long: `Dispatch a single request exactly as the serve loop would and print the
response envelope. The command fails when the tool reports an error.`,
		Example: `  # Geocode a neighbourhood
  location-server call geocode_location --params '{"location": "Upper West Side"}'

  # Distance as a table
  location-server call calculate_distance -o table \
    --params '{"lat1": 40.7589, "lon1": -73.9851, "lat2": 40.6892, "lon2": -73.9442}'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCall(cmd, opts, args[0], params, output)
		},
	}

	cmd.Flags().StringVarP(&params, "params", "p", "{}", "tool parameters as a JSON object")
	cmd.Flags().StringVarP(&output, "output", "o", "json", "output format (json, table)")

	return cmd
}

func runCall(cmd *cobra.Command, opts *rootOptions, tool, params, output string) error {
	dw, err := NewDataWriter(cmd.OutOrStdout(), output)
	if err != nil {
		return err
	}
	if !json.Valid([]byte(params)) {
		return fmt.Errorf("--params is not valid JSON")
	}

	_, _, dispatcher, err := setup(cmd, opts)
	if err != nil {
		return err
	}

	resp := dispatcher.Call(cmd.Context(), tool, json.RawMessage(params))
	fields := resultFields(resp)

	if dw.format == OutputFormatJSON {
		err = dw.WriteStruct(resp)
	} else {
		kv := NewKeyValueBuilder(tool).
			Add("success", resp.Success).
			AddIf(resp.Error != "", "error", resp.Error)
		for key, value := range fields {
			kv.Add(key, value)
		}
		err = kv.Write(dw)
	}
	if err != nil {
		return err
	}

	if msg := failureMessage(resp, fields); msg != "" {
		return fmt.Errorf("%s failed: %s", tool, msg)
	}
	return nil
}

// resultFields flattens the response result into its top-level JSON fields
func resultFields(resp mcp.Response) map[string]interface{} {
	fields := map[string]interface{}{}
	if resp.Result == nil {
		return fields
	}
	data, err := json.Marshal(resp.Result)
	if err != nil {
		return fields
	}
	_ = json.Unmarshal(data, &fields)
	return fields
}

// failureMessage reports why a call failed, or "" if it succeeded
func failureMessage(resp mcp.Response, fields map[string]interface{}) string {
	if !resp.Success {
		return resp.Error
	}
	if msg, ok := fields["error"].(string); ok {
		return msg
	}
	return ""
}
