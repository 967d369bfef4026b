package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mara/innkeep/pkg/models"
)

func init() {
	// Register custom completions after all commands are initialized
	cobra.OnInitialize(registerCompletions)
}

func registerCompletions() {
	// --db flag: complete with .db files
	rootCmd.RegisterFlagCompletionFunc("db", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"db"}, cobra.ShellCompDirectiveFilterFileExt
	})

	registerFilterCompletions(ticketListCmd, []string{
		models.TicketOpen, models.TicketInProgress, models.TicketBlocked, models.TicketDone,
	})
	registerFilterCompletions(guestsListCmd, []string{
		models.ResBooked, models.ResCheckedIn, models.ResCheckedOut, models.ResCancelled,
	})
	registerFilterCompletions(watchCmd, []string{
		models.ResBooked, models.ResCheckedIn, models.ResCheckedOut, models.ResCancelled,
	})

	for _, cmd := range []*cobra.Command{guestsListCmd, watchCmd} {
		cmd.RegisterFlagCompletionFunc("channel", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return []string{models.ChannelAirbnb, models.ChannelBooking, models.ChannelDirect, "all"}, cobra.ShellCompDirectiveNoFileComp
		})
	}
}

func registerFilterCompletions(cmd *cobra.Command, statuses []string) {
	cmd.RegisterFlagCompletionFunc("status", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return append(statuses, "all"), cobra.ShellCompDirectiveNoFileComp
	})
	cmd.RegisterFlagCompletionFunc("period", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"today", "next7days", "this-week", "this-month", "ytd", "all"}, cobra.ShellCompDirectiveNoFileComp
	})
}
