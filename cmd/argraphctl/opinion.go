package main

import (
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/opendebate/argraph/arith"
	"github.com/opendebate/argraph/graph"
	"github.com/opendebate/argraph/opinionop"
)

var opinionCmd = &cobra.Command{
	Use:   "opinion",
	Short: "Create, patch, delete, and query opinions",
}

func init() {
	opinionCmd.AddCommand(
		opinionCreateORCmd(),
		opinionCreateANDCmd(),
		opinionPatchCmd(),
		opinionDeleteCmd(),
		opinionInfoCmd(),
		opinionQueryCmd(),
		opinionHeadCmd(),
	)
}

func opinionCreateORCmd() *cobra.Command {
	var content, creator, debateID string
	var seed string

	cmd := &cobra.Command{
		Use:   "create-or",
		Short: "Create an OR/solid opinion",
		RunE: func(cmd *cobra.Command, args []string) error {
			var score *arith.Score
			if seed != "" {
				v, err := strconv.ParseFloat(seed, 64)
				if err != nil {
					return err
				}
				s := arith.Of(v)
				score = &s
			}
			id, err := proc.engine.CreateOR(cmd.Context(), content, creator, debateID, score, time.Now().UnixMilli())
			if err != nil {
				return err
			}
			return printResult(id, nil)
		},
	}
	cmd.Flags().StringVar(&content, "content", "", "opinion content")
	cmd.Flags().StringVar(&creator, "creator", "", "creator name")
	cmd.Flags().StringVar(&debateID, "debate", "", "home debate id")
	cmd.Flags().StringVar(&seed, "score", "", "optional leaf positive_score seed")
	return cmd
}

func opinionCreateANDCmd() *cobra.Command {
	var parentID, creator, debateID, edgeType string
	var sonIDs []string

	cmd := &cobra.Command{
		Use:   "create-and",
		Short: "Create an AND group under a parent OR node",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, edges, updated, err := proc.engine.CreateAND(cmd.Context(), parentID, sonIDs, graph.LinkType(edgeType), creator, debateID, time.Now().UnixMilli())
			if err != nil {
				return err
			}
			return printResult(map[string]any{"and_id": id, "edge_ids": edges}, updated)
		},
	}
	cmd.Flags().StringVar(&parentID, "parent", "", "parent OR node id")
	cmd.Flags().StringSliceVar(&sonIDs, "sons", nil, "son opinion ids")
	cmd.Flags().StringVar(&edgeType, "edge-type", string(graph.LinkSupport), "SUPPORT or OPPOSE")
	cmd.Flags().StringVar(&creator, "creator", "", "creator name")
	cmd.Flags().StringVar(&debateID, "debate", "", "home debate id")
	return cmd
}

func opinionPatchCmd() *cobra.Command {
	var id, content, score string
	var hasContent, hasScore bool

	cmd := &cobra.Command{
		Use:   "patch",
		Short: "Patch a leaf opinion's content and/or score",
		RunE: func(cmd *cobra.Command, args []string) error {
			var contentPtr *string
			if hasContent {
				contentPtr = &content
			}
			var scorePtr *arith.Score
			if hasScore {
				if score == "" {
					s := arith.Absent
					scorePtr = &s
				} else {
					v, err := strconv.ParseFloat(score, 64)
					if err != nil {
						return err
					}
					s := arith.Of(v)
					scorePtr = &s
				}
			}
			updated, err := proc.engine.PatchOpinion(cmd.Context(), id, contentPtr, scorePtr)
			if err != nil {
				return err
			}
			return printResult(nil, updated)
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "opinion id")
	cmd.Flags().StringVar(&content, "content", "", "new content")
	cmd.Flags().BoolVar(&hasContent, "set-content", false, "apply --content")
	cmd.Flags().StringVar(&score, "score", "", "new positive_score (empty string clears it)")
	cmd.Flags().BoolVar(&hasScore, "set-score", false, "apply --score")
	return cmd
}

func opinionDeleteCmd() *cobra.Command {
	var id, debateID string

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete or retract an opinion",
		RunE: func(cmd *cobra.Command, args []string) error {
			updated, err := proc.engine.DeleteOpinion(cmd.Context(), id, debateID)
			if err != nil {
				return err
			}
			return printResult(nil, updated)
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "opinion id")
	cmd.Flags().StringVar(&debateID, "debate", "", "debate to retract from (global debate destroys the node)")
	return cmd
}

func opinionInfoCmd() *cobra.Command {
	var id, debateID string
	var withEdges bool

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show an opinion's attributes and optionally its edges",
		RunE: func(cmd *cobra.Command, args []string) error {
			attrs, edges, err := proc.engine.InfoOpinion(cmd.Context(), id, debateID, withEdges)
			if err != nil {
				return err
			}
			return printJSON(map[string]any{"attributes": attrs, "edges": edges})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "opinion id")
	cmd.Flags().StringVar(&debateID, "debate", "", "filter edges to this debate's members")
	cmd.Flags().BoolVar(&withEdges, "edges", false, "include incident edges")
	return cmd
}

func opinionQueryCmd() *cobra.Command {
	var substring, debateID, order string
	var minScore, maxScore float64
	var hasMin, hasMax bool
	var limit int

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Query opinions by content/debate/score range",
		RunE: func(cmd *cobra.Command, args []string) error {
			var minPtr, maxPtr *float64
			if hasMin {
				minPtr = &minScore
			}
			if hasMax {
				maxPtr = &maxScore
			}
			attrs, err := proc.engine.QueryOpinion(cmd.Context(), substring, debateID, minPtr, maxPtr, opinionop.QueryOrder(order), limit)
			if err != nil {
				return err
			}
			return printJSON(attrs)
		},
	}
	cmd.Flags().StringVar(&substring, "contains", "", "content substring filter")
	cmd.Flags().StringVar(&debateID, "debate", "", "restrict to this debate's members")
	cmd.Flags().Float64Var(&minScore, "min-score", 0, "minimum positive_score")
	cmd.Flags().BoolVar(&hasMin, "has-min-score", false, "apply --min-score")
	cmd.Flags().Float64Var(&maxScore, "max-score", 0, "maximum positive_score")
	cmd.Flags().BoolVar(&hasMax, "has-max-score", false, "apply --max-score")
	cmd.Flags().StringVar(&order, "order", string(opinionop.OrderRecent), "recent or score")
	cmd.Flags().IntVar(&limit, "limit", 0, "truncate results (0 = unbounded)")
	return cmd
}

func opinionHeadCmd() *cobra.Command {
	var debateID string
	var isRoot bool

	cmd := &cobra.Command{
		Use:   "head",
		Short: "List a debate's root or leaf opinions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := proc.engine.HeadOpinion(cmd.Context(), debateID, isRoot)
			if err != nil {
				return err
			}
			return printJSON(ids)
		},
	}
	cmd.Flags().StringVar(&debateID, "debate", "", "debate id")
	cmd.Flags().BoolVar(&isRoot, "root", false, "roots (no outgoing edges) instead of leaves (no incoming edges)")
	return cmd
}
