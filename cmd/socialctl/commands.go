package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/asakaida/socialization/internal/app"
	"github.com/asakaida/socialization/internal/entities"
	"github.com/asakaida/socialization/internal/repositories"
	"github.com/asakaida/socialization/internal/services/social"
	"github.com/spf13/cobra"
)

type opener func(ctx context.Context, env string) (*app.App, error)

type cli struct {
	open opener
	app  *app.App

	env    string
	limit  int
	offset int
	oldest bool
	side   string

	mentioner   string
	mentionable string
}

func newRootCmd(open opener) *cobra.Command {
	c := &cli{open: open}

	root := &cobra.Command{
		Use:   "socialctl",
		Short: "Inspect and edit follow, like and mention relationships",
		Long: `socialctl operates on the relationship store of the configured backend.
Entities are written as type:id, e.g. user:alice. Capabilities come from CAPABILITIES,
e.g. "user:follower,followable,liker;post:likeable".`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd.Context(), c.env)
			if err != nil {
				return err
			}
			c.app = a
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if c.app == nil {
				return nil
			}
			err := c.app.Close()
			c.app = nil
			return err
		},
	}
	root.PersistentFlags().StringVarP(&c.env, "env", "e", "dev", "Environment to use (dev, test, prod)")

	root.AddCommand(
		c.pairCmd("relate", "Create a relationship", c.relate),
		c.pairCmd("unrelate", "Remove a relationship", c.unrelate),
		c.pairCmd("toggle", "Flip a relationship and print the new state", c.toggle),
		c.pairCmd("check", "Report whether a relationship exists", c.check),
		c.listCmd("objects", "List the IDs of the objects an entity relates to", c.objects),
		c.listCmd("subjects", "List the IDs of the entities related to an object", c.subjects),
		c.countCmd(),
		c.purgeCmd(),
		c.mentionCmd(),
		c.mentionsCmd(),
	)
	return root
}

type pairFunc func(ctx context.Context, cmd *cobra.Command, kind entities.Kind, subject, object entities.Entity) error

func (c *cli) pairCmd(use, short string, fn pairFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <kind> <subject> <object>",
		Short: short,
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := entities.ParseKind(args[0])
			if err != nil {
				return err
			}
			subject, err := c.app.Resolve(args[1])
			if err != nil {
				return err
			}
			object, err := c.app.Resolve(args[2])
			if err != nil {
				return err
			}
			return fn(cmd.Context(), cmd, kind, subject, object)
		},
	}
}

func (c *cli) relate(ctx context.Context, cmd *cobra.Command, kind entities.Kind, subject, object entities.Entity) error {
	actor, _, err := c.app.Social.Roles(kind)
	if err != nil {
		return err
	}
	if _, err := actor.Act(ctx, subject, object); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), entities.NewRelationship(kind, subject, object))
	return nil
}

func (c *cli) unrelate(ctx context.Context, cmd *cobra.Command, kind entities.Kind, subject, object entities.Entity) error {
	actor, _, err := c.app.Social.Roles(kind)
	if err != nil {
		return err
	}
	removed, err := actor.Unact(ctx, subject, object)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), removed)
	return nil
}

func (c *cli) toggle(ctx context.Context, cmd *cobra.Command, kind entities.Kind, subject, object entities.Entity) error {
	actor, _, err := c.app.Social.Roles(kind)
	if err != nil {
		return err
	}
	related, err := actor.Toggle(ctx, subject, object)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), related)
	return nil
}

func (c *cli) check(ctx context.Context, cmd *cobra.Command, kind entities.Kind, subject, object entities.Entity) error {
	actor, _, err := c.app.Social.Roles(kind)
	if err != nil {
		return err
	}
	related, err := actor.Related(ctx, subject, object)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), related)
	return nil
}

type listFunc func(ctx context.Context, kind entities.Kind, entity entities.Entity, otherType string, opts *social.ListOptions) ([]string, error)

func (c *cli) listCmd(use, short string, fn listFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " <kind> <entity> <type>",
		Short: short,
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := entities.ParseKind(args[0])
			if err != nil {
				return err
			}
			entity, err := c.app.Resolve(args[1])
			if err != nil {
				return err
			}
			ids, err := fn(cmd.Context(), kind, entity, args[2], c.listOptions())
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&c.limit, "limit", 0, "Maximum number of IDs (0 = no limit)")
	cmd.Flags().IntVar(&c.offset, "offset", 0, "Number of IDs to skip")
	cmd.Flags().BoolVar(&c.oldest, "oldest", false, "Oldest first instead of newest first")
	return cmd
}

func (c *cli) listOptions() *social.ListOptions {
	opts := &social.ListOptions{Limit: c.limit, Offset: c.offset}
	if c.oldest {
		opts.Order = repositories.OrderOldest
	}
	return opts
}

func (c *cli) objects(ctx context.Context, kind entities.Kind, subject entities.Entity, objectType string, opts *social.ListOptions) ([]string, error) {
	actor, _, err := c.app.Social.Roles(kind)
	if err != nil {
		return nil, err
	}
	return actor.RelatedObjectIDs(ctx, subject, objectType, opts)
}

func (c *cli) subjects(ctx context.Context, kind entities.Kind, object entities.Entity, subjectType string, opts *social.ListOptions) ([]string, error) {
	_, target, err := c.app.Social.Roles(kind)
	if err != nil {
		return nil, err
	}
	return target.ActorIDs(ctx, object, subjectType, opts)
}

func (c *cli) countCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "count <kind> <entity> <type>",
		Short: "Count the objects an entity relates to, or with --side subjects the entities related to it",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := entities.ParseKind(args[0])
			if err != nil {
				return err
			}
			entity, err := c.app.Resolve(args[1])
			if err != nil {
				return err
			}
			actor, target, err := c.app.Social.Roles(kind)
			if err != nil {
				return err
			}

			var n int64
			switch strings.ToLower(c.side) {
			case "objects":
				n, err = actor.CountRelatedObjects(cmd.Context(), entity, args[2])
			case "subjects":
				n, err = target.CountActors(cmd.Context(), entity, args[2])
			default:
				return fmt.Errorf("invalid --side %q (want objects or subjects)", c.side)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
	cmd.Flags().StringVar(&c.side, "side", "objects", "Which end to count: objects or subjects")
	return cmd
}

func (c *cli) purgeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "purge <kind> <entity>",
		Short: "Remove every relationship of a kind an entity takes part in",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := entities.ParseKind(args[0])
			if err != nil {
				return err
			}
			ref, err := entities.ParseRef(args[1])
			if err != nil {
				return err
			}
			store, err := c.app.Social.Store(kind)
			if err != nil {
				return err
			}
			n, err := store.RemoveAll(cmd.Context(), ref)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
}

func (c *cli) mentionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mention <mentioner> <mentionable>",
		Short: "Record a mention",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mentioner, err := entities.ParseRef(args[0])
			if err != nil {
				return err
			}
			mentionable, err := entities.ParseRef(args[1])
			if err != nil {
				return err
			}
			m, err := c.app.Social.Mentions().Record(cmd.Context(), mentioner, mentionable)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), m.ID)
			return nil
		},
	}
}

func (c *cli) mentionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mentions",
		Short: "List mentions, optionally filtered by either end",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := &repositories.MentionFilter{}
			if c.mentioner != "" {
				ref, err := entities.ParseRef(c.mentioner)
				if err != nil {
					return err
				}
				filter.MentionerType, filter.MentionerID = ref.Type, ref.ID
			}
			if c.mentionable != "" {
				ref, err := entities.ParseRef(c.mentionable)
				if err != nil {
					return err
				}
				filter.MentionableType, filter.MentionableID = ref.Type, ref.ID
			}

			mentions, err := c.app.Social.Mentions().List(cmd.Context(), filter, c.listOptions())
			if err != nil {
				return err
			}
			for _, m := range mentions {
				fmt.Fprintln(cmd.OutOrStdout(), m)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&c.mentioner, "mentioner", "", "Only mentions made by this entity (type:id)")
	cmd.Flags().StringVar(&c.mentionable, "mentionable", "", "Only mentions of this entity (type:id)")
	cmd.Flags().IntVar(&c.limit, "limit", 0, "Maximum number of mentions (0 = no limit)")
	cmd.Flags().IntVar(&c.offset, "offset", 0, "Number of mentions to skip")
	cmd.Flags().BoolVar(&c.oldest, "oldest", false, "Oldest first instead of newest first")
	return cmd
}
