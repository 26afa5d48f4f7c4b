package handler

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"envlogs/internal/service"
	"envlogs/internal/slack"
)

// User-facing slash command texts, kept stable because Slack renders them verbatim.
const (
	usageText         = "Please provide an environment name to search for. Usage: `/your-command <env-name>`"
	webhookMissingMsg = "Error: The Slack webhook is not configured on the server."
	criticalErrorMsg  = "A critical error occurred while processing your request."
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// slackAuth guards the two Slack-facing endpoints; the rest are internal.
func RegisterRoutes(app *fiber.App, db *sql.DB, lookupSvc service.LookupService, exportSvc service.ExportService, slackAuth fiber.Handler) {
	// Platform liveness probe (Cloud Run sends GET / to check container health)
	app.Get("/", Liveness())

	// Slack entry points
	app.Post("/", slackAuth, SlashCommand(lookupSvc))
	app.Post("/interactions", slackAuth, Interaction(exportSvc))

	// Health endpoint: checks DB connectivity only
	app.Get("/health", HealthCheck(db))

	// Backward-compatible simple liveness probe
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	// Export records
	app.Get("/exports", ListExports(exportSvc))
	app.Get("/exports/:id", GetExport(exportSvc))
}

// Liveness answers the platform health probe.
func Liveness() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendString("Service is healthy.")
	}
}

// HealthCheck reports readiness based on DB connectivity.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// SlashCommand handles the Slack slash command trigger. Replies are always
// ephemeral JSON; Slack shows them only to the invoking user.
func SlashCommand(lookupSvc service.LookupService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cmd, err := slack.ParseSlashCommand(c.Body())
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(slack.Ephemeral(criticalErrorMsg))
		}

		if cmd.Text == "" {
			return c.Status(fiber.StatusOK).JSON(slack.Ephemeral(usageText))
		}

		res, err := lookupSvc.Lookup(c.UserContext(), cmd.Text)
		if err != nil {
			if errors.Is(err, slack.ErrWebhookNotConfigured) {
				return c.Status(fiber.StatusInternalServerError).JSON(slack.Ephemeral(webhookMissingMsg))
			}
			return c.Status(fiber.StatusInternalServerError).JSON(slack.Ephemeral(criticalErrorMsg))
		}

		if !res.Posted {
			return c.Status(fiber.StatusOK).JSON(slack.Ephemeral(
				"No results found for '" + cmd.Text + "' in any region."))
		}
		return c.Status(fiber.StatusOK).JSON(slack.Ephemeral(
			"Found " + strconv.Itoa(len(res.Environments)) + " matching environments. Details sent to the designated channel."))
	}
}

// Interaction handles Slack interactivity callbacks. Only the get_logs
// button action is acted on; anything else is acknowledged and dropped.
func Interaction(exportSvc service.ExportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		in, err := slack.ParseInteraction(c.Body())
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PAYLOAD", "invalid interaction payload")
		}

		for _, action := range in.Actions {
			if action.ActionID != slack.ActionGetLogs {
				continue
			}

			value, err := action.ButtonValue()
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_ACTION_VALUE", "invalid action value")
			}

			export, downloadURL, err := exportSvc.Export(c.UserContext(), service.ExportRequest{
				EnvironmentID: value.ID,
				Region:        value.Region,
				DeploymentID:  value.Deployment,
				RequestedBy:   in.User.ID,
			})
			if err != nil {
				if errors.Is(err, service.ErrRegionUnavailable) {
					return writeError(c, fiber.StatusBadRequest, "REGION_UNAVAILABLE", "region is not usable")
				}
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}

			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"export":       export,
				"download_url": downloadURL,
			})
		}

		// Unknown actions are acknowledged so Slack stops retrying.
		return c.SendStatus(fiber.StatusOK)
	}
}

// ListExports returns recorded log exports with limit & offset.
func ListExports(exportSvc service.ExportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limitStr := c.Query("limit", "10")
		offsetStr := c.Query("offset", "0")
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(offsetStr)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := exportSvc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

// GetExport returns one export record plus a fresh presigned download URL.
func GetExport(exportSvc service.ExportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		export, downloadURL, err := exportSvc.Get(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "export not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(fiber.Map{
			"export":       export,
			"download_url": downloadURL,
		})
	}
}
