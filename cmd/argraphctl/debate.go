package main

import (
	"time"

	"github.com/spf13/cobra"
)

var debateCmd = &cobra.Command{
	Use:   "debate",
	Short: "Create, delete, patch, query, and cite into debates",
}

func init() {
	debateCmd.AddCommand(
		debateCreateCmd(),
		debateDeleteCmd(),
		debatePatchCmd(),
		debateQueryCmd(),
		debateCiteCmd(),
	)
}

func debateCreateCmd() *cobra.Command {
	var name, creator string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a debate; the first one ever created becomes the global debate",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := proc.engine.CreateDebate(cmd.Context(), name, creator, time.Now().UnixMilli())
			if err != nil {
				return err
			}
			return printResult(id, nil)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "debate name")
	cmd.Flags().StringVar(&creator, "creator", "", "creator name")
	return cmd
}

func debateDeleteCmd() *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a non-global debate",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := proc.engine.DeleteDebate(cmd.Context(), id); err != nil {
				return err
			}
			return printResult(nil, nil)
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "debate id")
	return cmd
}

func debatePatchCmd() *cobra.Command {
	var id, name string

	cmd := &cobra.Command{
		Use:   "patch",
		Short: "Rename a debate",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := proc.engine.PatchDebate(cmd.Context(), id, name); err != nil {
				return err
			}
			return printResult(nil, nil)
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "debate id")
	cmd.Flags().StringVar(&name, "name", "", "new name")
	return cmd
}

func debateQueryCmd() *cobra.Command {
	var substr string
	var limit int

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Substring-match debates by name",
		RunE: func(cmd *cobra.Command, args []string) error {
			debates, err := proc.engine.QueryDebate(cmd.Context(), substr, limit)
			if err != nil {
				return err
			}
			return printJSON(debates)
		},
	}
	cmd.Flags().StringVar(&substr, "contains", "", "name substring filter")
	cmd.Flags().IntVar(&limit, "limit", 0, "truncate results (0 = unbounded)")
	return cmd
}

func debateCiteCmd() *cobra.Command {
	var opinionID, debateID string

	cmd := &cobra.Command{
		Use:   "cite",
		Short: "Add an existing opinion to a debate's membership",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := proc.engine.CiteInDebate(cmd.Context(), opinionID, debateID); err != nil {
				return err
			}
			return printResult(nil, nil)
		},
	}
	cmd.Flags().StringVar(&opinionID, "opinion", "", "opinion id")
	cmd.Flags().StringVar(&debateID, "debate", "", "debate id")
	return cmd
}
