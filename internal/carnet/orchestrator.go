// Package carnet drives the batch card-generation pipeline: capture the
// active template, render every selected conductor, track progress on the
// durable session record and bundle the results into one zip archive.
package carnet

import (
	"fmt"
	"image"
	"log"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"

	"coopuertos-backend/internal/models"
	"coopuertos-backend/internal/render"
	"coopuertos-backend/internal/template"
)

// Repository is what the orchestrator needs from the database.
type Repository interface {
	SessionStore
	GetPlantillasActivas() ([]models.Plantilla, error)
	GetConductores() ([]models.Conductor, error)
	GetConductoresPorIDs(ids []uuid.UUID) ([]models.Conductor, error)
}

// ArtifactStore is what the orchestrator needs from the filesystem.
type ArtifactStore interface {
	SaveCarnet(sessionID uuid.UUID, filename string, img image.Image) (string, error)
	BuildArchive(sessionID uuid.UUID) (string, int, error)
	CleanupSession(sessionID uuid.UUID) error
}

type Generator struct {
	repo     Repository
	store    ArtifactStore
	renderer *render.Renderer
	workers  int
}

func NewGenerator(repo Repository, store ArtifactStore, renderer *render.Renderer, workers int) *Generator {
	if workers < 1 {
		workers = 1
	}
	return &Generator{
		repo:     repo,
		store:    store,
		renderer: renderer,
		workers:  workers,
	}
}

// Run processes one session to a terminal state. It is meant to be called in
// its own goroutine; the caller only creates the pending session and returns
// the session id to the client, which then polls.
func (g *Generator) Run(session *models.CarnetSession, conductorIDs []uuid.UUID, todos bool) {
	tracker := NewTracker(g.repo, session)

	fondo, campos, err := g.captureTemplate()
	if err != nil {
		tracker.Fail(err.Error())
		return
	}

	conductores, err := g.resolveConductores(conductorIDs, todos)
	if err != nil {
		tracker.Fail(err.Error())
		return
	}

	tracker.Start(len(conductores))
	log.Printf("Session %s: generating %d carnets", session.ID, len(conductores))

	itemErrs := g.processAll(tracker, session.ID, fondo, campos, conductores)

	snapshot := tracker.Snapshot()
	if snapshot.SuccessCount == 0 {
		summary := &multierror.Error{}
		for _, e := range itemErrs {
			summary = multierror.Append(summary, e)
		}
		tracker.Fail(fmt.Sprintf("todos los carnets fallaron: %v", summary.ErrorOrNil()))
		g.cleanup(session.ID)
		return
	}

	archivePath, n, err := g.store.BuildArchive(session.ID)
	if err != nil {
		// A finished batch without a retrievable archive is useless, so an
		// archive-write failure overrides an otherwise successful run.
		tracker.Fail((&StorageError{Op: "archivo zip", Err: err}).Error())
		g.cleanup(session.ID)
		return
	}

	g.cleanup(session.ID)
	tracker.Complete(archivePath)
	log.Printf("Session %s: archive ready with %d carnets", session.ID, n)
}

// captureTemplate reads and validates the active template once, at batch
// start. Exactly one template must be active; the batch renders against
// this captured copy even if an administrator edits templates mid-run.
func (g *Generator) captureTemplate() (image.Image, []template.Field, error) {
	activas, err := g.repo.GetPlantillasActivas()
	if err != nil {
		return nil, nil, &ConfigurationError{Reason: fmt.Sprintf("no se pudo consultar la plantilla activa: %v", err)}
	}
	if len(activas) == 0 {
		return nil, nil, &ConfigurationError{Reason: "no hay ninguna plantilla activa"}
	}
	if len(activas) > 1 {
		return nil, nil, &ConfigurationError{Reason: fmt.Sprintf("se esperaba exactamente una plantilla activa, hay %d", len(activas))}
	}

	plantilla := activas[0]
	campos, err := template.ParseCampos(plantilla.Campos)
	if err != nil {
		return nil, nil, &ConfigurationError{Reason: fmt.Sprintf("plantilla %q: %v", plantilla.Nombre, err)}
	}

	fondo, err := imaging.Open(plantilla.FondoPath)
	if err != nil {
		return nil, nil, &ConfigurationError{Reason: fmt.Sprintf("no se pudo leer el fondo de la plantilla %q: %v", plantilla.Nombre, err)}
	}

	return fondo, campos, nil
}

func (g *Generator) resolveConductores(ids []uuid.UUID, todos bool) ([]models.Conductor, error) {
	var (
		conductores []models.Conductor
		err         error
	)
	if todos {
		conductores, err = g.repo.GetConductores()
	} else {
		conductores, err = g.repo.GetConductoresPorIDs(ids)
	}
	if err != nil {
		return nil, &InputError{Reason: fmt.Sprintf("no se pudieron consultar los conductores: %v", err)}
	}
	if len(conductores) == 0 {
		return nil, &InputError{Reason: "ningún conductor para procesar"}
	}
	return conductores, nil
}

type itemResult struct {
	conductor models.Conductor
	rendered  *render.Result
	err       error
}

// processAll renders with a bounded worker pool but funnels every outcome
// through a single collector loop, so the tracker sees strictly serialized
// updates. Returns the per-item errors for the all-failed summary.
func (g *Generator) processAll(tracker *Tracker, sessionID uuid.UUID, fondo image.Image, campos []template.Field, conductores []models.Conductor) []error {
	jobs := make(chan models.Conductor)
	results := make(chan itemResult)

	var wg sync.WaitGroup
	for i := 0; i < g.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range jobs {
				rendered, err := g.renderer.Render(fondo, campos, &c)
				if err != nil {
					err = &RenderError{ConductorID: c.ID.String(), Err: err}
				}
				results <- itemResult{conductor: c, rendered: rendered, err: err}
			}
		}()
	}

	go func() {
		for _, c := range conductores {
			jobs <- c
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	var itemErrs []error
	for res := range results {
		c := res.conductor
		if res.err != nil {
			itemErrs = append(itemErrs, res.err)
			tracker.ItemError(c.ID.String(), res.err.Error())
			continue
		}

		for _, warning := range res.rendered.Warnings {
			tracker.Warn(c.ID.String(), warning)
		}

		filename := carnetFilename(&c)
		if _, err := g.store.SaveCarnet(sessionID, filename, res.rendered.Image); err != nil {
			serr := &StorageError{Op: filename, Err: err}
			itemErrs = append(itemErrs, serr)
			tracker.ItemError(c.ID.String(), serr.Error())
			continue
		}

		tracker.ItemSuccess(c.ID.String(), fmt.Sprintf("carnet generado: %s", filename))
	}

	return itemErrs
}

// carnetFilename names archive entries deterministically and without
// collisions: the cédula for readability, the id for uniqueness.
func carnetFilename(c *models.Conductor) string {
	if c.Cedula != "" {
		return fmt.Sprintf("carnet_%s.png", c.Cedula)
	}
	return fmt.Sprintf("carnet_%s.png", c.ID)
}

func (g *Generator) cleanup(sessionID uuid.UUID) {
	if err := g.store.CleanupSession(sessionID); err != nil {
		log.Printf("Warning: failed to clean up session %s: %v", sessionID, err)
	}
}
