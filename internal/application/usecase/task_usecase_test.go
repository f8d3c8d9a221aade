package usecase_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plataforma-app/erp-api/internal/application/dto"
	"github.com/plataforma-app/erp-api/internal/application/usecase"
	"github.com/plataforma-app/erp-api/internal/domain"
	"github.com/plataforma-app/erp-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

type taskFixture struct {
	uc        *usecase.TaskUseCase
	projectUC *usecase.ProjectUseCase
	projectID string
}

func buildTaskFixture(t *testing.T) *taskFixture {
	t.Helper()
	tasks := newFakeTaskRepo()
	projects := newFakeProjectRepo()
	uc := usecase.NewTaskUseCase(tasks, projects)
	projectUC := usecase.NewProjectUseCase(projects, tasks)

	p, err := projectUC.Create(dto.CreateProjectRequest{Code: "PRJ-001", Name: "Planta nueva"})
	require.NoError(t, err)
	return &taskFixture{uc: uc, projectUC: projectUC, projectID: p.ID}
}

func (f *taskFixture) createTask(t *testing.T, title string, deps ...string) *dto.TaskResponse {
	t.Helper()
	task, err := f.uc.Create(dto.CreateTaskRequest{
		ProjectID: f.projectID, Title: title, DependsOn: deps,
	})
	require.NoError(t, err)
	return task
}

// toDone lleva una tarea todo → in_progress → done.
func (f *taskFixture) toDone(t *testing.T, id string) {
	t.Helper()
	_, err := f.uc.ChangeStatus(id, dto.TaskStatusRequest{Status: entity.TaskStatusInProgress})
	require.NoError(t, err)
	_, err = f.uc.ChangeStatus(id, dto.TaskStatusRequest{Status: entity.TaskStatusDone})
	require.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación y dependencias
// ──────────────────────────────────────────────────────────────────────────────

func TestTaskCreate_NaceTodo(t *testing.T) {
	f := buildTaskFixture(t)
	task := f.createTask(t, "Diseñar layout")

	assert.Equal(t, entity.TaskStatusTodo, task.Status)
	assert.Equal(t, entity.TaskPriorityNormal, task.Priority)
}

func TestTaskCreate_ProyectoInexistente(t *testing.T) {
	f := buildTaskFixture(t)
	_, err := f.uc.Create(dto.CreateTaskRequest{
		ProjectID: "00000000-0000-0000-0000-00000000dead", Title: "Huérfana",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTaskCreate_DependenciaInexistente(t *testing.T) {
	f := buildTaskFixture(t)
	_, err := f.uc.Create(dto.CreateTaskRequest{
		ProjectID: f.projectID, Title: "Con dep rota",
		DependsOn: []string{uuid.New().String()},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTaskCreate_DependenciaDeOtroProyecto(t *testing.T) {
	f := buildTaskFixture(t)

	otro, err := f.projectUC.Create(dto.CreateProjectRequest{Code: "PRJ-002", Name: "Otro"})
	require.NoError(t, err)
	ajena, err := f.uc.Create(dto.CreateTaskRequest{ProjectID: otro.ID, Title: "Ajena"})
	require.NoError(t, err)

	_, err = f.uc.Create(dto.CreateTaskRequest{
		ProjectID: f.projectID, Title: "Cruzada", DependsOn: []string{ajena.ID},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"las dependencias no cruzan proyectos")
}

func TestTaskUpdate_AutoDependencia(t *testing.T) {
	f := buildTaskFixture(t)
	task := f.createTask(t, "Recursiva")

	_, err := f.uc.Update(task.ID, dto.UpdateTaskRequest{DependsOn: []string{task.ID}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "una tarea no puede depender de sí misma")
}

// ──────────────────────────────────────────────────────────────────────────────
// Cambio de estado
// ──────────────────────────────────────────────────────────────────────────────

func TestTaskChangeStatus_DoneBloqueadoPorDependencias(t *testing.T) {
	f := buildTaskFixture(t)
	base := f.createTask(t, "Cimientos")
	techo := f.createTask(t, "Techo", base.ID)

	_, err := f.uc.ChangeStatus(techo.ID, dto.TaskStatusRequest{Status: entity.TaskStatusInProgress})
	require.NoError(t, err, "iniciar no exige dependencias completas")

	_, err = f.uc.ChangeStatus(techo.ID, dto.TaskStatusRequest{Status: entity.TaskStatusDone})
	assert.ErrorIs(t, err, domain.ErrConflict,
		"done exige que todas las dependencias estén done")

	// Completada la dependencia, la tarea puede cerrarse.
	f.toDone(t, base.ID)
	done, err := f.uc.ChangeStatus(techo.ID, dto.TaskStatusRequest{Status: entity.TaskStatusDone})
	require.NoError(t, err)
	assert.Equal(t, entity.TaskStatusDone, done.Status)
}

func TestTaskChangeStatus_TransicionInvalida(t *testing.T) {
	f := buildTaskFixture(t)
	task := f.createTask(t, "Directa")

	_, err := f.uc.ChangeStatus(task.ID, dto.TaskStatusRequest{Status: entity.TaskStatusDone})
	assert.ErrorIs(t, err, domain.ErrConflict, "todo → done salta in_progress")
}

func TestTaskChangeStatus_RegresoATodo(t *testing.T) {
	f := buildTaskFixture(t)
	task := f.createTask(t, "Repriorizada")

	_, err := f.uc.ChangeStatus(task.ID, dto.TaskStatusRequest{Status: entity.TaskStatusInProgress})
	require.NoError(t, err)

	back, err := f.uc.ChangeStatus(task.ID, dto.TaskStatusRequest{Status: entity.TaskStatusTodo})
	require.NoError(t, err)
	assert.Equal(t, entity.TaskStatusTodo, back.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Proyecto: borrado bloqueado por tareas abiertas
// ──────────────────────────────────────────────────────────────────────────────

func TestProjectDelete_ConTareasAbiertasEsConflicto(t *testing.T) {
	f := buildTaskFixture(t)
	task := f.createTask(t, "Pendiente")

	assert.ErrorIs(t, f.projectUC.Delete(f.projectID), domain.ErrConflict)

	// Con todas las tareas cerradas o canceladas, el proyecto se elimina.
	f.toDone(t, task.ID)
	assert.NoError(t, f.projectUC.Delete(f.projectID))
}

func TestProjectUpdate_CompletarExigeTareasCerradas(t *testing.T) {
	f := buildTaskFixture(t)
	task := f.createTask(t, "Pendiente")

	completed := entity.ProjectStatusCompleted
	_, err := f.projectUC.Update(f.projectID, dto.UpdateProjectRequest{Status: &completed})
	assert.ErrorIs(t, err, domain.ErrConflict,
		"no se completa un proyecto con tareas abiertas")

	f.toDone(t, task.ID)
	p, err := f.projectUC.Update(f.projectID, dto.UpdateProjectRequest{Status: &completed})
	require.NoError(t, err)
	assert.Equal(t, entity.ProjectStatusCompleted, p.Status)
}

func TestProjectCreate_FechasInvalidas(t *testing.T) {
	f := buildTaskFixture(t)

	start := time.Now()
	end := start.Add(-24 * time.Hour)
	_, err := f.projectUC.Create(dto.CreateProjectRequest{
		Code: "PRJ-BAD", Name: "Invertido", StartDate: &start, EndDate: &end,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "end_date no puede preceder a start_date")
}
