package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rushteam/tagmine/core"
	"github.com/rushteam/tagmine/mining"
	"github.com/rushteam/tagmine/rule"
)

func previewCmd() *cobra.Command {
	f := &runFlags{}
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Show the normalized transactions and their one-hot encoding",
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, _, err := execute(cmd, f)
			if err != nil {
				return err
			}
			pv := res.Preview
			return render(cmd.OutOrStdout(), f.format, pv, func(tw *tabwriter.Writer) {
				fmt.Fprintf(tw, "#\t%s\n", strings.Join(pv.Items, "\t"))
				for i, row := range pv.Rows {
					cells := make([]string, len(row))
					for j, ok := range row {
						if ok {
							cells[j] = "1"
						} else {
							cells[j] = "0"
						}
					}
					fmt.Fprintf(tw, "%d\t%s\n", i+1, strings.Join(cells, "\t"))
				}
			})
		},
	}
	addRunFlags(cmd, f)
	return cmd
}

func itemsetsCmd() *cobra.Command {
	f := &runFlags{}
	cmd := &cobra.Command{
		Use:   "itemsets",
		Short: "List frequent hashtag itemsets (those containing --query when set)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, p, err := execute(cmd, f)
			if err != nil {
				return err
			}
			sets := res.Containing
			if len(p.Query) == 0 {
				sets = append([]mining.FrequentItemset(nil), res.Frequent.Itemsets...)
				mining.SortBySupport(sets)
			}
			return render(cmd.OutOrStdout(), f.format, sets, func(tw *tabwriter.Writer) {
				fmt.Fprintln(tw, "ITEMSET\tSUPPORT\tCOUNT")
				for _, fi := range sets {
					fmt.Fprintf(tw, "%s\t%s\t%d\n", fi.Items, pct(core.Percent(fi.Support, f.precision), f.precision), fi.Count)
				}
			})
		},
	}
	addRunFlags(cmd, f)
	return cmd
}

func rulesCmd() *cobra.Command {
	f := &runFlags{}
	var explain bool
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List association rules (those whose antecedent contains --query when set)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, p, err := execute(cmd, f)
			if err != nil {
				return err
			}
			rules := res.Rules
			if len(p.Query) > 0 {
				rules = res.MatchedRules
			}
			if explain {
				out := make([]rule.Explanation, 0, len(rules))
				for _, r := range rules {
					out = append(out, rule.Explain(r, f.precision))
				}
				return render(cmd.OutOrStdout(), f.format, out, func(tw *tabwriter.Writer) {
					for _, e := range out {
						fmt.Fprintf(tw, "%s\n  %s\n", e.Rule, e.Text)
					}
				})
			}
			return render(cmd.OutOrStdout(), f.format, rules, func(tw *tabwriter.Writer) {
				fmt.Fprintln(tw, "ANTECEDENT\tCONSEQUENT\tSUPPORT\tCONFIDENCE\tLIFT")
				for _, r := range rules {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
						r.Antecedent, r.Consequent,
						pct(core.Percent(r.Support, f.precision), f.precision),
						pct(core.Percent(r.Confidence, f.precision), f.precision),
						num(core.Round(r.Lift, f.precision), f.precision))
				}
			})
		},
	}
	addRunFlags(cmd, f)
	cmd.Flags().BoolVar(&explain, "explain", false, "print a plain-language explanation per rule")
	return cmd
}

func recommendCmd() *cobra.Command {
	f := &runFlags{}
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Recommend hashtags that co-occur with --query",
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, _, err := execute(cmd, f)
			if err != nil {
				return err
			}
			recs := res.Recommendations
			return render(cmd.OutOrStdout(), f.format, recs, func(tw *tabwriter.Writer) {
				if len(recs) == 0 {
					fmt.Fprintln(tw, "no recommendations: try lowering --min-support or --min-confidence")
					return
				}
				fmt.Fprintln(tw, "HASHTAG\tCONFIDENCE\tLIFT\tSUPPORT\tBECAUSE")
				for _, r := range recs {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s => %s\n",
						r.Hashtag,
						pct(r.ConfidencePct(f.precision), f.precision),
						num(core.Round(r.Lift, f.precision), f.precision),
						pct(r.SupportPct(f.precision), f.precision),
						r.Antecedent, r.Consequent)
				}
			})
		},
	}
	addRunFlags(cmd, f)
	return cmd
}
