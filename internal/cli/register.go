package cli

import (
	"errors"

	"github.com/skillswap/skillswap/internal/common/apperrors"
	"github.com/skillswap/skillswap/internal/common/validation"
	"github.com/skillswap/skillswap/internal/profile"
	"github.com/skillswap/skillswap/internal/registration"
	"github.com/spf13/cobra"
)

func newRegisterCmd() *cobra.Command {
	var (
		values    = map[string]*string{}
		interests []string
	)
	cmd := &cobra.Command{
		Use:   "register [flags]",
		Short: "Create a SkillSwap profile and switch to it",
		Long: `Create a SkillSwap profile and switch to it. Step one asks for your name,
email, location and language; all four are required. Step two asks for
your interests, which pick the skills shown to you. Fields not given as
flags are asked for.

Examples:
  # Fully from flags
  skillswap register --name Dana --email dana@example.com --location Yishun --language English --interest Yoga

  # Answer prompts
  skillswap register`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := getApp(cmd)
			flow := registration.NewFlow(a.scope, a.api, profile.FromContext(cmd.Context()))
			p := newPrompter(cmd)
			interactive := !cmd.Flags().Changed("interest")

			for _, field := range registration.Fields {
				if err := flow.SetField(field, *values[field]); err != nil {
					return err
				}
			}
			for {
				err := flow.Next()
				if err == nil {
					break
				}
				var ves apperrors.ValidationErrors
				if !errors.As(err, &ves) {
					return err
				}
				missing := flow.Errors()
				for _, field := range registration.Fields {
					if msg, ok := missing[field]; ok {
						errorLabel.Fprintf(cmd.OutOrStdout(), "%s\n", msg)
					}
				}
				// answer what is missing, or give up when nothing can be asked
				for _, field := range registration.Fields {
					if _, ok := missing[field]; !ok {
						continue
					}
					answer, aerr := p.ask(validation.Label(field))
					if aerr != nil {
						return err
					}
					if err := flow.SetField(field, answer); err != nil {
						return err
					}
				}
			}

			if interactive {
				cmd.Println("Add your interests, leave empty to finish.")
				for {
					answer, err := p.ask("Interest")
					if err != nil && !errors.Is(err, ErrInputEnded) {
						return err
					}
					if answer == "" {
						break
					}
					if err := flow.AddInterest(answer); err != nil {
						return err
					}
				}
			} else {
				for _, i := range interests {
					if err := flow.AddInterest(i); err != nil {
						return err
					}
				}
			}

			user, err := flow.Submit(cmd.Context())
			if err != nil {
				return err
			}
			path, err := saveProfileID(user.ID)
			if err != nil {
				return err
			}
			return printResult(cmd, user, func() {
				okLabel.Fprintf(cmd.OutOrStdout(), "Welcome, %s! Your profile id is %d.\n", user.Name, user.ID)
				cmd.Printf("Saved as the active profile in %s\n", path)
			})
		},
	}
	for _, field := range registration.Fields {
		values[field] = cmd.Flags().String(field, "", "Your "+field)
	}
	cmd.Flags().StringArrayVar(&interests, "interest", nil, "An interest, repeatable")
	return cmd
}
