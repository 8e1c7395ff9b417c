package cmd

import (
	stderrors "errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/krcglobal/gbms/internal/api"
	"github.com/krcglobal/gbms/internal/tui"
)

var errCancelled = stderrors.New("cancelled")

// parseID parses a positive integer resource ID.
func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid argument %q: expected a positive numeric ID", arg)
	}
	return id, nil
}

// fieldFlags collects the body of a create or update request.
type fieldFlags struct {
	pairs []string
	file  string
}

func (f *fieldFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&f.pairs, "set", nil, "field as key=value; the value is parsed as YAML (repeatable)")
	cmd.Flags().StringVarP(&f.file, "from-file", "f", "", "read fields from a JSON or YAML file")
}

// fields merges the file (if any) with the --set pairs, pairs winning.
// Values are decoded as YAML scalars so numbers and booleans keep their
// type; date-like values stay strings.
func (f *fieldFlags) fields() (map[string]any, error) {
	out := map[string]any{}

	if f.file != "" {
		data, err := os.ReadFile(f.file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", f.file, err)
		}
		if err := yaml.Unmarshal(data, &out); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", f.file, err)
		}
		if out == nil {
			out = map[string]any{}
		}
	}

	for _, pair := range f.pairs {
		key, raw, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid argument %q: expected key=value", pair)
		}
		out[key] = scalar(raw)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("required flag --set or --from-file not given")
	}
	return out, nil
}

func scalar(raw string) any {
	var v any
	if err := yaml.Unmarshal([]byte(raw), &v); err != nil || v == nil {
		return raw
	}
	switch v.(type) {
	case map[string]any, []any:
		return raw
	}
	return v
}

// confirmDelete asks before a destructive call unless yes is set. Without
// a terminal --yes is required.
func confirmDelete(cc *CommandContext, cmd *cobra.Command, what string, yes bool) error {
	if yes {
		return nil
	}
	if !cc.Prompting(cmd.InOrStdin()) {
		return fmt.Errorf("required flag --yes not set: refusing to delete %s without confirmation", what)
	}
	ok, err := tui.PromptForConfirmation(fmt.Sprintf("%s을(를) 삭제하시겠습니까?", what), false)
	if err != nil {
		return err
	}
	if !ok {
		return errCancelled
	}
	return nil
}

// printResult reports a create, update or delete response.
func printResult[T any](cc *CommandContext, cmd *cobra.Command, env *api.Envelope[T], fallback string) error {
	if !cc.textOutput() {
		return cc.Print(cmd, nil, env)
	}
	msg := env.Message
	if msg == "" {
		msg = fallback
	}
	cc.Notice(cmd, "%s", msg)
	return nil
}

// printPage reports the paging information of a listing.
func printPage[T any](cc *CommandContext, cmd *cobra.Command, env *api.Envelope[T]) {
	if env.Pages > 0 {
		cc.Notice(cmd, "\n총 %d건 (페이지 %d/%d)", env.Total, env.CurrentPage, env.Pages)
	}
}

type listFlags struct {
	page    int
	perPage int
}

func (l *listFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&l.page, "page", 0, "page number")
	cmd.Flags().IntVar(&l.perPage, "per-page", 0, "items per page")
}
