package main

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"
	"github.com/meikuraledutech/workflow"
)

// newApp builds the engine HTTP API over a workflow.Store.
//
// Save and execute are gated on the validator: a definition with structural
// violations is rejected with 422 and the violation list, never persisted or
// queued.
func newApp(store workflow.Store, log *slog.Logger) *fiber.App {
	app := fiber.New()

	save := func(c fiber.Ctx, id string) error {
		var def workflow.Definition
		if err := c.Bind().JSON(&def); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
		}
		g, err := workflow.FromDefinition(&def)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		if violations := g.Validate(); len(violations) > 0 {
			return c.Status(422).JSON(fiber.Map{"violations": violations})
		}
		stored, err := store.SaveWorkflow(c.Context(), id, &def)
		if err != nil {
			log.Error("save workflow", "err", err)
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(201).JSON(stored)
	}

	// ── Schema ────────────────────────────────────────────────────────
	app.Post("/schema", func(c fiber.Ctx) error {
		if err := store.CreateSchema(c.Context()); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"message": "schema created"})
	})

	app.Delete("/schema", func(c fiber.Ctx) error {
		if err := store.DropSchema(c.Context()); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"message": "schema dropped"})
	})

	// ── Workflows ─────────────────────────────────────────────────────
	app.Post("/workflows", func(c fiber.Ctx) error {
		return save(c, "")
	})

	app.Post("/workflows/:id", func(c fiber.Ctx) error {
		return save(c, c.Params("id"))
	})

	app.Get("/workflows", func(c fiber.Ctx) error {
		summaries, err := store.ListWorkflows(c.Context())
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(summaries)
	})

	app.Get("/workflows/:id", func(c fiber.Ctx) error {
		def, err := store.GetWorkflow(c.Context(), c.Params("id"))
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		if def == nil {
			return c.Status(404).JSON(fiber.Map{"error": "workflow not found"})
		}
		return c.JSON(def)
	})

	app.Delete("/workflows/:id", func(c fiber.Ctx) error {
		if err := store.DeleteWorkflow(c.Context(), c.Params("id")); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.SendStatus(204)
	})

	// ── Executions ────────────────────────────────────────────────────
	app.Post("/workflows/:id/execute", func(c fiber.Ctx) error {
		id := c.Params("id")
		def, err := store.GetWorkflow(c.Context(), id)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		if def == nil {
			return c.Status(404).JSON(fiber.Map{"error": "workflow not found"})
		}
		g, err := workflow.FromDefinition(def)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		if violations := g.Validate(); len(violations) > 0 {
			return c.Status(422).JSON(fiber.Map{"violations": violations})
		}

		var req workflow.Execution
		if err := c.Bind().JSON(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
		}
		exec := workflow.Execution{WorkflowID: id, TriggerData: req.TriggerData}
		if _, err := store.CreateExecution(c.Context(), &exec); err != nil {
			if errors.Is(err, workflow.ErrWorkflowNotFound) {
				return c.Status(404).JSON(fiber.Map{"error": "workflow not found"})
			}
			log.Error("create execution", "err", err)
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(202).JSON(exec)
	})

	app.Get("/workflows/:id/executions", func(c fiber.Ctx) error {
		execs, err := store.ListExecutions(c.Context(), c.Params("id"))
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(execs)
	})

	app.Get("/executions/:id", func(c fiber.Ctx) error {
		e, err := store.GetExecution(c.Context(), c.Params("id"))
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		if e == nil {
			return c.Status(404).JSON(fiber.Map{"error": "execution not found"})
		}
		return c.JSON(e)
	})

	return app
}
