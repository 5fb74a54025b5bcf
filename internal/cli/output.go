package cli

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"sigs.k8s.io/yaml"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// printResult prints value as a {"result":1,"value":...} JSON envelope with
// --json, as YAML with --yaml, and calls human otherwise.
func printResult(cmd *cobra.Command, value any, human func()) error {
	switch {
	case jsonOutput:
		return printJSON(cmd.OutOrStdout(), value)
	case yamlOutput:
		return printYAML(cmd.OutOrStdout(), value)
	default:
		human()
		return nil
	}
}

// printJSON prints value wrapped in the result envelope.
func printJSON(w io.Writer, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to format JSON output: %v", err)
	}
	return printEnvelope(w, raw)
}

// printEnvelope wraps an already encoded JSON value, such as a response
// body, in the result envelope.
func printEnvelope(w io.Writer, raw []byte) error {
	out, err := sjson.SetRawBytes([]byte(`{"result":1}`), "value", raw)
	if err != nil {
		return fmt.Errorf("failed to format JSON output: %v", err)
	}
	_, err = fmt.Fprint(w, gjson.GetBytes(out, "@pretty").Raw)
	return err
}

func printJSONError(w io.Writer, err error) {
	out, serr := sjson.SetBytes([]byte(`{}`), "error", err.Error())
	if serr != nil {
		fmt.Fprintf(w, "{\"error\": %q}\n", err.Error())
		return
	}
	fmt.Fprint(w, gjson.GetBytes(out, "@pretty").Raw)
}

func printYAML(w io.Writer, value any) error {
	out, err := yaml.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to convert to YAML: %v", err)
	}
	_, err = w.Write(out)
	return err
}
