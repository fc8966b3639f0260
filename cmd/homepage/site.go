package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/josh-nowak/homepage/consts"
)

type siteTable struct {
	Site    consts.SiteInfo `json:"site" yaml:"site"`
	Home    consts.Metadata `json:"home" yaml:"home"`
	Blog    consts.Metadata `json:"blog" yaml:"blog"`
	Socials []consts.Social `json:"socials" yaml:"socials"`
}

func writeSiteTable(w io.Writer, format string) error {
	table := siteTable{
		Site:    consts.Site,
		Home:    consts.Home,
		Blog:    consts.Blog,
		Socials: consts.SocialLinks(),
	}
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(table); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(table)
	default:
		return fmt.Errorf("unsupported format %q (want yaml or json)", format)
	}
}

func siteCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "site",
		Short: "Print the site name, page metadata and social links",
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeSiteTable(cmd.OutOrStdout(), format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format: yaml or json")
	return cmd
}
