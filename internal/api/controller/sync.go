package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ougirez/statdash/internal/domain"
)

type initSyncResponse struct {
	Success bool               `json:"success"`
	JobID   string             `json:"job_id"`
	Queue   []domain.QueueItem `json:"queue"`
}

type successResponse struct {
	Success bool `json:"success"`
}

func (c *Controller) InitSync(ctx echo.Context) error {
	job, err := c.sync.Init(ctx.Request().Context())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, initSyncResponse{Success: true, JobID: job.ID, Queue: job.Queue})
}

// ProcessSyncItem always answers 200; a failed item is reported in the body.
func (c *Controller) ProcessSyncItem(ctx echo.Context) error {
	res := c.sync.ProcessOne(ctx.Request().Context(), ctx.Param("id"))
	return ctx.JSON(http.StatusOK, res)
}

func (c *Controller) FinishSync(ctx echo.Context) error {
	c.sync.Finish(ctx.Request().Context())
	return ctx.JSON(http.StatusOK, successResponse{Success: true})
}

func (c *Controller) RunSync(ctx echo.Context) error {
	report, err := c.sync.Run(ctx.Request().Context(), nil)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, report)
}

func (c *Controller) SyncStatus(ctx echo.Context) error {
	job := c.sync.Status()
	if job == nil {
		job = &domain.SyncJob{Phase: domain.SyncPhaseIdle, Queue: []domain.QueueItem{}, Results: []*domain.ItemResult{}}
	}
	return ctx.JSON(http.StatusOK, job)
}
