package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/abayate/earthwise/internal/daemon"
	"github.com/abayate/earthwise/internal/domain"
)

func init() {
	profileSetCmd.Flags().StringVar(&profileName, "name", "", "Display name")
	profileSetCmd.Flags().IntVar(&profileHealth, "health", 3, "Health self-rating (1-5)")
	profileSetCmd.Flags().IntVar(&profileEco, "eco", 3, "Eco self-rating (1-5)")
	profileSetCmd.Flags().StringSliceVar(&profileInterests, "interests", nil, "Comma-separated interests")
	profileCmd.AddCommand(profileSetCmd)
	rootCmd.AddCommand(profileCmd)
}

var (
	profileName      string
	profileHealth    int
	profileEco       int
	profileInterests []string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the stored onboarding profile",
	RunE:  runProfileShow,
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store the onboarding profile used to seed task selection",
	RunE:  runProfileSet,
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	p := d.Engine().Profile()
	if p == nil {
		fmt.Println("No profile set. Use \"earthwise profile set\" to create one.")
		return nil
	}

	fmt.Printf("Name:      %s\n", p.Name)
	fmt.Printf("Health:    %d/5\n", p.HealthRating)
	fmt.Printf("Eco:       %d/5\n", p.EcoRating)
	fmt.Printf("Interests: %s\n", strings.Join(p.Interests, ", "))
	return nil
}

func runProfileSet(cmd *cobra.Command, args []string) error {
	if profileHealth < 1 || profileHealth > 5 || profileEco < 1 || profileEco > 5 {
		return fmt.Errorf("ratings must be between 1 and 5")
	}

	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	p := domain.Profile{
		ID:           uuid.NewString(),
		CreatedAt:    time.Now(),
		Name:         profileName,
		HealthRating: profileHealth,
		EcoRating:    profileEco,
		Interests:    profileInterests,
	}
	if err := d.Engine().SetProfile(p); err != nil {
		return err
	}
	fmt.Println("Profile saved. Personalized selection applies when task lists are first seeded.")
	return nil
}
