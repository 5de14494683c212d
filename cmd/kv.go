package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var kvCmd = &cobra.Command{
	Use:   "kv",
	Short: "Inspect and modify the raw key/value store of this namespace.",
}

var kvGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Read a value through the backend.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newService(cmd.Root().Context())
		if err != nil {
			return err
		}

		value, err := store.Get(cmd.Root().Context(), args[0])
		if err != nil {
			return err
		}
		if value == nil {
			return fmt.Errorf("key '%s' not found", args[0])
		}

		out, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("failed to encode value: %w", err)
		}
		cmd.Println(string(out))
		return nil
	},
}

var kvSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Write a value. The value is parsed as JSON, falling back to a plain string.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newService(cmd.Root().Context())
		if err != nil {
			return err
		}
		return store.Set(cmd.Root().Context(), args[0], parseValue(args[1]))
	},
}

var kvDelCmd = &cobra.Command{
	Use:   "del <key>",
	Short: "Remove a key.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newService(cmd.Root().Context())
		if err != nil {
			return err
		}
		return store.Remove(cmd.Root().Context(), args[0])
	},
}

var kvKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the keys of this namespace.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newService(cmd.Root().Context())
		if err != nil {
			return err
		}

		keys := store.Keys(cmd.Root().Context())
		if len(keys) == 0 {
			cmd.Println("(empty)")
			return nil
		}
		cmd.Println(strings.Join(keys, "\n"))
		return nil
	},
}

var kvClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every key of this namespace, leaving other namespaces untouched.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newService(cmd.Root().Context())
		if err != nil {
			return err
		}
		return store.Clear(cmd.Root().Context())
	},
}

func init() {
	rootCmd.AddCommand(kvCmd)
	kvCmd.AddCommand(kvGetCmd, kvSetCmd, kvDelCmd, kvKeysCmd, kvClearCmd)
}

// parseValue interprets a CLI argument as JSON when possible, so numbers,
// booleans and objects round-trip; anything else is stored as a string.
func parseValue(arg string) interface{} {
	var value interface{}
	if err := json.Unmarshal([]byte(arg), &value); err != nil {
		return arg
	}
	return value
}
