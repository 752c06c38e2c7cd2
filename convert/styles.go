package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"lexhtml/common"
	"lexhtml/state"
	"lexhtml/style"
)

// Styles lists style registry: every category with its state keys, labels and
// resulting declarations.
func Styles(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	categories := env.Registry.Categories()
	if name := cmd.Args().Get(0); len(name) > 0 {
		c, err := common.ParseCategory(name)
		if err != nil {
			return fmt.Errorf("unable to list styles: %w", err)
		}
		categories = []common.Category{c}
	}
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many categories", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}
	return writeStyles(os.Stdout, env.Registry, categories)
}

func writeStyles(w io.Writer, reg *style.Registry, categories []common.Category) error {
	title := cases.Title(language.English)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tKEY\tLABEL\tCSS")
	for _, c := range categories {
		for _, key := range reg.Keys(c) {
			st, ok := reg.Lookup(c, key)
			if !ok {
				continue
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c, key, title.String(st.Label), st.CSS)
		}
	}
	return tw.Flush()
}
