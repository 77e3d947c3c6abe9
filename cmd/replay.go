package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/geekyharshvinfo-lgtm/agentic-claims/commbus"
	"github.com/geekyharshvinfo-lgtm/agentic-claims/coreengine/config"
	"github.com/geekyharshvinfo-lgtm/agentic-claims/coreengine/scenario"
	"github.com/geekyharshvinfo-lgtm/agentic-claims/coreengine/sequencer"
)

var replayCmd = &cobra.Command{
	Use:   "replay [claim-id]",
	Short: "Replay the investigation pipeline for one claim in the terminal",
	Long: `Opens the claim in a workspace, runs the six-stage pipeline at its
authored pacing, prints each stage transition as it happens, and finishes
with the settlement recommendation.

Unknown claim identifiers fall back to the default scenario content, but the
claim itself must exist in the seeded set.

Example:
  claimsd replay AC-2025-00124`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func runReplay(cmd *cobra.Command, args []string) error {
	claimID := args[0]

	eng, err := buildEngine()
	if err != nil {
		return err
	}

	done := make(chan string, 1)
	unsubStart := eng.bus.Subscribe(commbus.TypeName[*commbus.StageStarted](),
		func(ctx context.Context, m commbus.Message) (any, error) {
			ev := m.(*commbus.StageStarted)
			fmt.Printf("  [%d/6] %-18s running...\n", ev.StageIndex+1, ev.StageKind)
			return nil, nil
		})
	defer unsubStart()
	unsubDone := eng.bus.Subscribe(commbus.TypeName[*commbus.StageCompleted](),
		func(ctx context.Context, m commbus.Message) (any, error) {
			ev := m.(*commbus.StageCompleted)
			mark := "done"
			if ev.Status == string(scenario.StageError) {
				mark = "ERROR"
			}
			fmt.Printf("  [%d/6] %-18s %s  %s\n", ev.StageIndex+1, ev.StageKind, mark, ev.Summary)
			return nil, nil
		})
	defer unsubDone()
	unsubRun := eng.bus.Subscribe(commbus.TypeName[*commbus.RunCompleted](),
		func(ctx context.Context, m commbus.Message) (any, error) {
			done <- m.(*commbus.RunCompleted).Status
			return nil, nil
		})
	defer unsubRun()

	view, err := eng.ws.Open(claimID)
	if err != nil {
		return err
	}
	fmt.Printf("Claim %s — %s, %s [%s]\n",
		view.Claim.ID, view.Claim.ClaimantName, view.Claim.Vehicle, view.Claim.Status)
	fmt.Printf("Incident: %s\n\n", view.Scenario.FNOL.Description)

	status := sequencer.RunCompleted
	if !view.Run.Finished() {
		status = <-done
	} else {
		fmt.Println("  claim already finalized, pipeline fast-pathed")
	}

	if status != sequencer.RunCompleted {
		return fmt.Errorf("pipeline run ended with status %q", status)
	}

	view, err = eng.ws.View(claimID)
	if err != nil {
		return err
	}
	scn := view.Scenario
	cfg := config.Get()
	fmt.Printf("\nDecision ready: %v\n", view.DecisionReady)
	fmt.Printf("  Liability:  %s - %s\n", scn.Liability.Assessment, scn.Liability.Description)
	fmt.Printf("  Payout:     INR %d (%s)\n", scn.Payout.Amount, scn.Payout.Breakdown)
	fmt.Printf("  Confidence: %.0f%%", scn.Confidence*100)
	if scn.Confidence >= cfg.HighConfidenceThreshold {
		fmt.Print("  (fast-track eligible)")
	}
	fmt.Println()
	for _, st := range scn.Stages {
		if risk, ok := st.DataFloat("riskScore"); ok {
			fmt.Printf("  Fraud risk: %.2f", risk)
			if risk > cfg.FraudReviewThreshold {
				fmt.Print("  (SIU review recommended)")
			}
			fmt.Println()
		}
	}
	return nil
}
