package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/opendebate/argraph/graph"
)

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Create, delete, retype, and attack edges",
}

func init() {
	linkCmd.AddCommand(
		linkCreateCmd(),
		linkDeleteCmd(),
		linkPatchCmd(),
		linkAttackCmd(),
	)
}

func linkCreateCmd() *cobra.Command {
	var fromID, toID, typ, creator string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a directed SUPPORT/OPPOSE edge",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, updated, err := proc.engine.CreateLink(cmd.Context(), fromID, toID, graph.LinkType(typ), creator, time.Now().UnixMilli())
			if err != nil {
				return err
			}
			return printResult(id, updated)
		},
	}
	cmd.Flags().StringVar(&fromID, "from", "", "source opinion id")
	cmd.Flags().StringVar(&toID, "to", "", "target opinion id")
	cmd.Flags().StringVar(&typ, "type", string(graph.LinkSupport), "SUPPORT or OPPOSE")
	cmd.Flags().StringVar(&creator, "creator", "", "creator name")
	return cmd
}

func linkDeleteCmd() *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete an edge",
		RunE: func(cmd *cobra.Command, args []string) error {
			updated, err := proc.engine.DeleteLink(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printResult(nil, updated)
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "link id")
	return cmd
}

func linkPatchCmd() *cobra.Command {
	var id, typ string

	cmd := &cobra.Command{
		Use:   "patch",
		Short: "Retype an edge in place",
		RunE: func(cmd *cobra.Command, args []string) error {
			updated, err := proc.engine.PatchLink(cmd.Context(), id, graph.LinkType(typ))
			if err != nil {
				return err
			}
			return printResult(nil, updated)
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "link id")
	cmd.Flags().StringVar(&typ, "type", "", "new type: SUPPORT or OPPOSE")
	return cmd
}

func linkAttackCmd() *cobra.Command {
	var id, debateID, creator string

	cmd := &cobra.Command{
		Use:   "attack",
		Short: "Materialize an edge as an attackable proposition",
		RunE: func(cmd *cobra.Command, args []string) error {
			reasonID, andID, updated, err := proc.engine.AttackLink(cmd.Context(), id, debateID, creator, time.Now().UnixMilli())
			if err != nil {
				return err
			}
			return printResult(map[string]any{"or_id": reasonID, "and_id": andID}, updated)
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "link id")
	cmd.Flags().StringVar(&debateID, "debate", "", "debate the materialized nodes join")
	cmd.Flags().StringVar(&creator, "creator", "", "creator name")
	return cmd
}
