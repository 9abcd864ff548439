package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/meikuraledutech/workflow"
	"github.com/meikuraledutech/workflow/memory"
)

func main() {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	// ── Build an approval flow through the store operations ───────────
	g := workflow.New(logger)
	start := g.AddNode(workflow.KindStart, workflow.Position{X: 0, Y: 0})
	task := g.AddNode(workflow.KindTask, workflow.Position{X: 200, Y: 0})
	approval := g.AddNode(workflow.KindApproval, workflow.Position{X: 400, Y: 0})
	end := g.AddNode(workflow.KindEnd, workflow.Position{X: 600, Y: 0})

	fmt.Printf("violations before wiring: %v\n", g.Validate())

	g.Connect(start.ID, task.ID)
	g.Connect(task.ID, approval.ID)
	g.Connect(approval.ID, end.ID)

	label := "Review purchase order"
	g.UpdateNode(task.ID, workflow.NodeUpdate{
		Label:  &label,
		Config: workflow.TaskConfig{TaskType: "review", Description: "check supplier terms", Timeout: 600},
	})

	fmt.Printf("violations after wiring: %v\n", g.Validate())

	// ── Serialize and persist ─────────────────────────────────────────
	def, err := g.ToDefinition(map[string]any{"name": "PO approval"})
	if err != nil {
		log.Fatalf("serialize: %v", err)
	}

	store := memory.New()
	saved, err := store.SaveWorkflow(ctx, "", def)
	if err != nil {
		log.Fatalf("save: %v", err)
	}
	fmt.Printf("\nsaved workflow %s\n", saved.ID)
	printJSON(saved)

	// ── Round-trip back into editor state ─────────────────────────────
	loaded, err := store.GetWorkflow(ctx, saved.ID)
	if err != nil {
		log.Fatalf("get: %v", err)
	}
	g2, err := workflow.FromDefinition(loaded)
	if err != nil {
		log.Fatalf("reconstruct: %v", err)
	}
	g2.SetLogger(logger)
	fmt.Printf("\nreloaded %d nodes, %d edges, violations: %v\n",
		len(g2.Nodes), len(g2.Edges), g2.Validate())

	// New nodes added after a load never reuse an id.
	n := g2.AddNode(workflow.KindNotification, workflow.Position{X: 400, Y: 200})
	fmt.Printf("next id after load: %s\n", n.ID)

	// ── Execute ───────────────────────────────────────────────────────
	exec := workflow.Execution{WorkflowID: saved.ID, TriggerData: map[string]any{"order_id": "po-1042"}}
	if _, err := store.CreateExecution(ctx, &exec); err != nil {
		log.Fatalf("execute: %v", err)
	}
	fmt.Printf("\nexecution queued: %s (%s)\n", exec.ID, exec.Status)
}

func printJSON(v any) {
	out, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(out))
}
