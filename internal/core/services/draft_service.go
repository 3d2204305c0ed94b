package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/movement_tracker/internal/apperrors"
	"github.com/SscSPs/movement_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/movement_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/movement_tracker/internal/core/ports/services"
	"github.com/SscSPs/movement_tracker/internal/dto"
	"github.com/SscSPs/movement_tracker/internal/utils/spreadsheet"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// draftService implements the DraftSvcFacade interface
type draftService struct {
	BaseService
	movementRepo    portsrepo.MovementRepositoryWithTx
	approvalRepo    portsrepo.ApprovalRepository
	areaRepo        portsrepo.AreaReader
	bankRepo        portsrepo.BankAccountRepositoryFacade
	defaultCurrency string
}

// DraftServiceOption is a function that configures a draftService
type DraftServiceOption func(*draftService)

// WithDraftEventSink sets the sink lifecycle events are published to
func WithDraftEventSink(sink portssvc.EventSink) DraftServiceOption {
	return func(s *draftService) {
		s.Events = sink
	}
}

// WithDraftBankAccountRepository enables bank account checks on imported rows
func WithDraftBankAccountRepository(repo portsrepo.BankAccountRepositoryFacade) DraftServiceOption {
	return func(s *draftService) {
		s.bankRepo = repo
	}
}

// WithDefaultCurrency sets the currency for spreadsheet rows without one
func WithDefaultCurrency(code string) DraftServiceOption {
	return func(s *draftService) {
		s.defaultCurrency = strings.ToUpper(code)
	}
}

// NewDraftService creates a new draft service with the provided dependencies
func NewDraftService(
	movementRepo portsrepo.MovementRepositoryWithTx,
	approvalRepo portsrepo.ApprovalRepository,
	areaRepo portsrepo.AreaReader,
	authorizer portssvc.AuthorizationSvc,
	options ...DraftServiceOption,
) portssvc.DraftSvcFacade {
	s := &draftService{
		BaseService:     BaseService{Authorizer: authorizer},
		movementRepo:    movementRepo,
		approvalRepo:    approvalRepo,
		areaRepo:        areaRepo,
		defaultCurrency: "USD",
	}
	for _, option := range options {
		option(s)
	}
	return s
}

var _ portssvc.DraftSvcFacade = (*draftService)(nil)

// ImportDrafts inserts the rows as DRAFT movements in one transaction.
func (s *draftService) ImportDrafts(ctx context.Context, caller domain.Caller, req dto.ImportDraftsRequest) ([]domain.Movement, error) {
	rows := make([]domain.DraftRow, len(req.Rows))
	for i, r := range req.Rows {
		rows[i] = domain.DraftRow{
			AreaID:             r.AreaID,
			DepartmentID:       r.DepartmentID,
			BankAccountID:      r.BankAccountID,
			Type:               r.Type,
			Amount:             r.Amount,
			CurrencyCode:       r.CurrencyCode,
			Description:        r.Description,
			Category:           r.Category,
			Reference:          r.Reference,
			TransactionDate:    r.TransactionDate,
			IsInternalTransfer: r.IsInternalTransfer,
		}
	}
	return s.importRows(ctx, caller, rows)
}

// ImportDraftsFromXLSX reads the first sheet of workbook into areaID.
func (s *draftService) ImportDraftsFromXLSX(ctx context.Context, caller domain.Caller, areaID string, workbook io.Reader) ([]domain.Movement, error) {
	if err := s.RequireVerified(caller); err != nil {
		return nil, err
	}
	if _, err := s.Authorizer.RequireAreaAccess(ctx, caller, areaID); err != nil {
		return nil, err
	}

	rows, err := spreadsheet.ReadDraftRows(workbook, areaID, s.defaultCurrency, domain.MaxImportRows)
	if err != nil {
		s.LogDebug(ctx, "Rejected draft workbook", slog.String("area_id", areaID), slog.String("error", err.Error()))
		return nil, apperrors.NewBadRequestError(err.Error())
	}
	return s.importRows(ctx, caller, rows)
}

func (s *draftService) importRows(ctx context.Context, caller domain.Caller, rows []domain.DraftRow) ([]domain.Movement, error) {
	if err := s.RequireVerified(caller); err != nil {
		return nil, err
	}
	if len(rows) == 0 || len(rows) > domain.MaxImportRows {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("between 1 and %d rows are required", domain.MaxImportRows))
	}

	checked := map[string]struct{}{}
	for _, r := range rows {
		if _, ok := checked[r.AreaID]; ok {
			continue
		}
		if _, err := s.Authorizer.RequireAreaAccess(ctx, caller, r.AreaID); err != nil {
			return nil, err
		}
		checked[r.AreaID] = struct{}{}
	}

	at := now()
	movements := make([]domain.Movement, len(rows))
	for i, r := range rows {
		if !r.Type.IsValid() {
			return nil, apperrors.NewBadRequestError(fmt.Sprintf("row %d: invalid movement type %q", i+1, r.Type))
		}
		if r.Amount <= 0 {
			return nil, apperrors.NewBadRequestError(fmt.Sprintf("row %d: amount must be greater than zero", i+1))
		}
		p := placement{areaID: r.AreaID, departmentID: r.DepartmentID, bankAccountID: r.BankAccountID}
		if err := checkPlacement(ctx, s.areaRepo, s.bankRepo, s.movementRepo, p); err != nil {
			if apperrors.KindOf(err) == apperrors.KindBadRequest {
				return nil, apperrors.NewBadRequestError(fmt.Sprintf("row %d: %s", i+1, apperrors.Message(err)))
			}
			return nil, err
		}

		movements[i] = domain.Movement{
			MovementID:         uuid.NewString(),
			AreaID:             r.AreaID,
			DepartmentID:       r.DepartmentID,
			BankAccountID:      r.BankAccountID,
			Type:               r.Type,
			Status:             domain.InitialStatus(true),
			Amount:             r.Amount,
			CurrencyCode:       strings.ToUpper(r.CurrencyCode),
			Description:        strings.TrimSpace(r.Description),
			Category:           trimmedOrNil(r.Category),
			Reference:          trimmedOrNil(r.Reference),
			TransactionDate:    dateOnly(r.TransactionDate),
			IsInternalTransfer: r.IsInternalTransfer,
			AuditFields:        domain.NewAuditFields(caller.UserID, at),
		}
	}

	err := s.WithTx(ctx, s.movementRepo, func(tx pgx.Tx) error {
		return s.movementRepo.SaveMovementsTx(ctx, tx, movements)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to import drafts", slog.Int("rows", len(movements)))
		return nil, err
	}

	events := make([]domain.MovementEvent, len(movements))
	for i := range movements {
		events[i] = domain.NewMovementEvent(domain.EventImported, &movements[i], caller.UserID, at)
	}
	s.LogInfo(ctx, "Drafts imported", slog.Int("count", len(movements)))
	s.Emit(ctx, events...)
	return movements, nil
}

// ListDrafts pages through the drafts of the caller's areas.
func (s *draftService) ListDrafts(ctx context.Context, caller domain.Caller, params dto.ListDraftsParams) ([]domain.Movement, *string, error) {
	scope, err := s.Authorizer.AccessibleScope(ctx, caller)
	if err != nil {
		return nil, nil, err
	}
	if params.AreaID != nil && !scope.Contains(*params.AreaID) {
		return nil, nil, apperrors.NewNotFoundError("area not found")
	}
	if scope.IsEmpty() {
		return []domain.Movement{}, nil, nil
	}

	status := domain.StatusDraft
	filter := domain.MovementFilter{
		Scope:             scope,
		AreaID:            params.AreaID,
		Status:            &status,
		Search:            trimmedOrNil(params.Search),
		UncategorizedOnly: params.UncategorizedOnly,
	}
	drafts, next, err := s.movementRepo.ListMovements(ctx, filter, params.Limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list drafts")
		return nil, nil, err
	}
	if drafts == nil {
		drafts = []domain.Movement{}
	}
	return drafts, next, nil
}

// GetDraftStats counts the drafts of the caller's areas.
func (s *draftService) GetDraftStats(ctx context.Context, caller domain.Caller) (*domain.DraftStats, error) {
	scope, err := s.Authorizer.AccessibleScope(ctx, caller)
	if err != nil {
		return nil, err
	}
	if scope.IsEmpty() {
		return &domain.DraftStats{ByArea: map[string]int64{}}, nil
	}
	stats, err := s.movementRepo.GetDraftStats(ctx, scope)
	if err != nil {
		s.LogError(ctx, err, "Failed to get draft stats")
		return nil, err
	}
	return stats, nil
}

// UpdateDraft changes the area, department or category of a draft.
func (s *draftService) UpdateDraft(ctx context.Context, caller domain.Caller, movementID string, req dto.UpdateDraftRequest) (*domain.Movement, error) {
	if err := s.RequireVerified(caller); err != nil {
		return nil, err
	}
	patch := req.ToPatch()
	patch.Category = trimmedOrNil(patch.Category)
	if patch.IsEmpty() {
		return nil, apperrors.NewBadRequestError("no fields to update")
	}

	draft, err := s.loadDraft(ctx, caller, movementID)
	if err != nil {
		return nil, err
	}
	if _, err := domain.Transition(draft.Status, domain.ActionCategorize); err != nil {
		return nil, err
	}
	if patch.AreaID != nil && *patch.AreaID != draft.AreaID {
		if _, err := s.Authorizer.RequireAreaAccess(ctx, caller, *patch.AreaID); err != nil {
			return nil, err
		}
	}
	preview := *draft
	if len(categorize(&preview, patch)) == 0 {
		return draft, nil
	}

	at := now()
	var changes map[string]domain.FieldChange
	err = s.WithTx(ctx, s.movementRepo, func(tx pgx.Tx) error {
		locked, err := s.lockDraft(ctx, tx, caller, draft, domain.ActionCategorize)
		if err != nil {
			return err
		}
		draft = locked
		if changes = categorize(locked, patch); len(changes) == 0 {
			return nil
		}
		p := placement{areaID: locked.AreaID, departmentID: locked.DepartmentID}
		if err := checkPlacement(ctx, s.areaRepo, s.bankRepo, s.movementRepo, p); err != nil {
			return err
		}

		locked.Touch(caller.UserID, at)
		ok, err := s.movementRepo.UpdateMovementTx(ctx, tx, *locked, domain.StatusDraft)
		if err != nil {
			return err
		}
		if !ok {
			return staleMovementError(ctx, s.movementRepo, movementID, domain.StatusDraft)
		}
		return s.approvalRepo.SaveApprovalsTx(ctx, tx, []domain.MovementApproval{newCategorizedEntry(movementID, changes, caller.UserID, at)})
	})
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindInternal {
			s.LogError(ctx, err, "Failed to update draft", slog.String("movement_id", movementID))
		}
		return nil, err
	}
	if len(changes) == 0 {
		return draft, nil
	}

	s.LogInfo(ctx, "Draft categorized", slog.String("movement_id", movementID))
	s.Emit(ctx, domain.NewMovementEvent(domain.EventCategorized, draft, caller.UserID, at))
	return draft, nil
}

// BulkUpdateDrafts applies one patch to every listed draft or to none.
func (s *draftService) BulkUpdateDrafts(ctx context.Context, caller domain.Caller, req dto.BulkUpdateDraftsRequest) (int, error) {
	if err := s.RequireAdmin(caller); err != nil {
		return 0, err
	}
	patch := req.ToPatch()
	patch.Category = trimmedOrNil(patch.Category)
	if patch.IsEmpty() {
		return 0, apperrors.NewBadRequestError("no fields to update")
	}
	ids, err := bulkDraftIDs(req.MovementIDs)
	if err != nil {
		return 0, err
	}
	if patch.AreaID != nil {
		if _, err := s.areaRepo.FindAreaByID(ctx, *patch.AreaID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return 0, apperrors.NewBadRequestError("area not found")
			}
			return 0, err
		}
	}

	at := now()
	var updated []domain.Movement
	err = s.WithTx(ctx, s.movementRepo, func(tx pgx.Tx) error {
		rows, err := s.movementRepo.FindMovementsByIDsForUpdate(ctx, tx, ids)
		if err != nil {
			return err
		}
		if err := s.validateDraftBatch(ctx, caller, ids, rows, false); err != nil {
			return err
		}

		changes := make([]map[string]domain.FieldChange, len(rows))
		for i := range rows {
			if changes[i] = categorize(&rows[i], patch); len(changes[i]) == 0 {
				continue
			}
			p := placement{areaID: rows[i].AreaID, departmentID: rows[i].DepartmentID}
			if err := checkPlacement(ctx, s.areaRepo, s.bankRepo, s.movementRepo, p); err != nil {
				return err
			}
		}

		var entries []domain.MovementApproval
		for i := range rows {
			if len(changes[i]) == 0 {
				continue
			}
			draft := &rows[i]
			draft.Touch(caller.UserID, at)
			ok, err := s.movementRepo.UpdateMovementTx(ctx, tx, *draft, domain.StatusDraft)
			if err != nil {
				return err
			}
			if !ok {
				return staleMovementError(ctx, s.movementRepo, draft.MovementID, domain.StatusDraft)
			}
			entries = append(entries, newCategorizedEntry(draft.MovementID, changes[i], caller.UserID, at))
			updated = append(updated, *draft)
		}
		if len(entries) == 0 {
			return nil
		}
		return s.approvalRepo.SaveApprovalsTx(ctx, tx, entries)
	})
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindInternal {
			s.LogError(ctx, err, "Bulk draft update failed", slog.Int("count", len(ids)))
		}
		return 0, err
	}

	events := make([]domain.MovementEvent, len(updated))
	for i := range updated {
		events[i] = domain.NewMovementEvent(domain.EventCategorized, &updated[i], caller.UserID, at)
	}
	s.LogInfo(ctx, "Drafts categorized in bulk", slog.Int("count", len(updated)))
	s.Emit(ctx, events...)
	return len(updated), nil
}

// FinalizeDraft sends a draft with a department to PENDING.
func (s *draftService) FinalizeDraft(ctx context.Context, caller domain.Caller, movementID string) (*domain.Movement, error) {
	if err := s.RequireVerified(caller); err != nil {
		return nil, err
	}
	draft, err := s.loadDraft(ctx, caller, movementID)
	if err != nil {
		return nil, err
	}
	next, err := domain.Transition(draft.Status, domain.ActionFinalize)
	if err != nil {
		return nil, err
	}
	if draft.NeedsCategorization() {
		return nil, errDepartmentRequired()
	}

	at := now()
	err = s.WithTx(ctx, s.movementRepo, func(tx pgx.Tx) error {
		locked, err := s.lockDraft(ctx, tx, caller, draft, domain.ActionFinalize)
		if err != nil {
			return err
		}
		if locked.NeedsCategorization() {
			return errDepartmentRequired()
		}
		n, err := s.movementRepo.UpdateStatusTx(ctx, tx, []string{movementID}, domain.StatusDraft, next, caller.UserID, at)
		if err != nil {
			return err
		}
		if n == 0 {
			return staleMovementError(ctx, s.movementRepo, movementID, domain.StatusDraft)
		}
		draft = locked
		return nil
	})
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindInternal {
			s.LogError(ctx, err, "Failed to finalize draft", slog.String("movement_id", movementID))
		}
		return nil, err
	}

	draft.Status = next
	draft.Touch(caller.UserID, at)
	s.LogInfo(ctx, "Draft finalized", slog.String("movement_id", movementID))
	s.Emit(ctx, domain.NewMovementEvent(domain.EventFinalized, draft, caller.UserID, at))
	return draft, nil
}

// BulkFinalizeDrafts finalizes every listed draft or none.
func (s *draftService) BulkFinalizeDrafts(ctx context.Context, caller domain.Caller, req dto.BulkDraftIDsRequest) (int, error) {
	if err := s.RequireVerified(caller); err != nil {
		return 0, err
	}
	ids, err := bulkDraftIDs(req.MovementIDs)
	if err != nil {
		return 0, err
	}

	at := now()
	var finalized []domain.Movement
	err = s.WithTx(ctx, s.movementRepo, func(tx pgx.Tx) error {
		rows, err := s.movementRepo.FindMovementsByIDsForUpdate(ctx, tx, ids)
		if err != nil {
			return err
		}
		if err := s.validateDraftBatch(ctx, caller, ids, rows, true); err != nil {
			return err
		}
		n, err := s.movementRepo.UpdateStatusTx(ctx, tx, ids, domain.StatusDraft, domain.StatusPending, caller.UserID, at)
		if err != nil {
			return err
		}
		if int(n) != len(ids) {
			return apperrors.NewConflictError(fmt.Sprintf("%d movement(s) are not drafts", len(ids)-int(n)))
		}
		finalized = rows
		return nil
	})
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindInternal {
			s.LogError(ctx, err, "Bulk finalize failed", slog.Int("count", len(ids)))
		}
		return 0, err
	}

	events := make([]domain.MovementEvent, len(finalized))
	for i := range finalized {
		finalized[i].Status = domain.StatusPending
		finalized[i].Touch(caller.UserID, at)
		events[i] = domain.NewMovementEvent(domain.EventFinalized, &finalized[i], caller.UserID, at)
	}
	s.LogInfo(ctx, "Drafts finalized in bulk", slog.Int("count", len(finalized)))
	s.Emit(ctx, events...)
	return len(finalized), nil
}

// DeleteDraft soft deletes a draft.
func (s *draftService) DeleteDraft(ctx context.Context, caller domain.Caller, movementID string) error {
	if err := s.RequireVerified(caller); err != nil {
		return err
	}
	draft, err := s.loadDraft(ctx, caller, movementID)
	if err != nil {
		return err
	}

	at := now()
	onlyDrafts := domain.StatusDraft
	err = s.WithTx(ctx, s.movementRepo, func(tx pgx.Tx) error {
		n, err := s.movementRepo.SoftDeleteTx(ctx, tx, []string{movementID}, &onlyDrafts, caller.UserID, at)
		if err != nil {
			return err
		}
		if n == 0 {
			return staleMovementError(ctx, s.movementRepo, movementID, domain.StatusDraft)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.LogInfo(ctx, "Draft deleted", slog.String("movement_id", movementID))
	s.Emit(ctx, domain.NewMovementEvent(domain.EventDeleted, draft, caller.UserID, at))
	return nil
}

// BulkDeleteDrafts soft deletes every listed draft or none.
func (s *draftService) BulkDeleteDrafts(ctx context.Context, caller domain.Caller, req dto.BulkDraftIDsRequest) (int, error) {
	if err := s.RequireVerified(caller); err != nil {
		return 0, err
	}
	ids, err := bulkDraftIDs(req.MovementIDs)
	if err != nil {
		return 0, err
	}

	at := now()
	onlyDrafts := domain.StatusDraft
	var deleted []domain.Movement
	err = s.WithTx(ctx, s.movementRepo, func(tx pgx.Tx) error {
		rows, err := s.movementRepo.FindMovementsByIDsForUpdate(ctx, tx, ids)
		if err != nil {
			return err
		}
		if err := s.validateDraftBatch(ctx, caller, ids, rows, false); err != nil {
			return err
		}
		n, err := s.movementRepo.SoftDeleteTx(ctx, tx, ids, &onlyDrafts, caller.UserID, at)
		if err != nil {
			return err
		}
		if int(n) != len(ids) {
			return apperrors.NewConflictError(fmt.Sprintf("%d movement(s) are not drafts", len(ids)-int(n)))
		}
		deleted = rows
		return nil
	})
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindInternal {
			s.LogError(ctx, err, "Bulk draft delete failed", slog.Int("count", len(ids)))
		}
		return 0, err
	}

	events := make([]domain.MovementEvent, len(deleted))
	for i := range deleted {
		events[i] = domain.NewMovementEvent(domain.EventDeleted, &deleted[i], caller.UserID, at)
	}
	s.LogInfo(ctx, "Drafts deleted in bulk", slog.Int("count", len(deleted)))
	s.Emit(ctx, events...)
	return len(deleted), nil
}

// loadDraft returns a DRAFT movement in one of the caller's areas. Unlike
// other movements, creating a draft grants no access to it.
func (s *draftService) loadDraft(ctx context.Context, caller domain.Caller, movementID string) (*domain.Movement, error) {
	draft, caps, err := loadVisibleMovement(ctx, &s.BaseService, s.movementRepo, caller, movementID)
	if err != nil {
		return nil, err
	}
	if caps.None() {
		return nil, apperrors.NewNotFoundError("movement not found")
	}
	if draft.Status != domain.StatusDraft {
		return nil, apperrors.NewConflictError(fmt.Sprintf("movement is %s, expected %s", draft.Status, domain.StatusDraft))
	}
	return draft, nil
}

// lockDraft re-reads seen under a row lock and checks that action may still
// run on it. A draft moved to an area the caller cannot reach counts as missing.
func (s *draftService) lockDraft(ctx context.Context, tx pgx.Tx, caller domain.Caller, seen *domain.Movement, action domain.LifecycleAction) (*domain.Movement, error) {
	locked, err := lockMovement(ctx, tx, s.movementRepo, seen.MovementID)
	if err != nil {
		return nil, err
	}
	if locked.AreaID != seen.AreaID {
		caps, err := s.Authorizer.ResolveCapabilities(ctx, caller, locked.AreaID)
		if err != nil {
			return nil, err
		}
		if caps.None() {
			return nil, apperrors.NewNotFoundError("movement not found")
		}
	}
	if _, err := domain.Transition(locked.Status, action); err != nil {
		return nil, err
	}
	return locked, nil
}

// validateDraftBatch checks existence, then status, then (when asked) that
// every draft has a department. Drafts outside the caller's areas count as missing.
func (s *draftService) validateDraftBatch(ctx context.Context, caller domain.Caller, ids []string, rows []domain.Movement, needDepartment bool) error {
	capsByArea := map[string]domain.Capabilities{}
	missing := len(ids) - len(rows)
	notDraft, noDepartment := 0, 0
	for _, m := range rows {
		caps, ok := capsByArea[m.AreaID]
		if !ok {
			var err error
			caps, err = s.Authorizer.ResolveCapabilities(ctx, caller, m.AreaID)
			if err != nil {
				return err
			}
			capsByArea[m.AreaID] = caps
		}
		switch {
		case caps.None():
			missing++
		case m.Status != domain.StatusDraft:
			notDraft++
		case needDepartment && m.NeedsCategorization():
			noDepartment++
		}
	}

	if missing > 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("%d movement(s) not found", missing))
	}
	if notDraft > 0 {
		return apperrors.NewConflictError(fmt.Sprintf("%d movement(s) are not drafts", notDraft))
	}
	if noDepartment > 0 {
		return apperrors.NewBadRequestError(fmt.Sprintf("%d draft(s) have no department", noDepartment))
	}
	return nil
}

// categorize applies patch to draft. A bank account is dropped along with the
// department when the draft moves to another area.
func categorize(draft *domain.Movement, patch domain.DraftPatch) map[string]domain.FieldChange {
	changes := patch.ApplyTo(draft)
	if _, moved := changes["areaID"]; moved && draft.BankAccountID != nil {
		changes["bankAccountID"] = domain.FieldChange{From: *draft.BankAccountID, To: nil}
		draft.BankAccountID = nil
	}
	return changes
}

func newCategorizedEntry(movementID string, changes map[string]domain.FieldChange, userID string, at time.Time) domain.MovementApproval {
	return domain.MovementApproval{
		ApprovalID: uuid.NewString(),
		MovementID: movementID,
		Action:     domain.ApprovalCategorized,
		Metadata: map[string]any{
			"fields":  sortedKeys(changes),
			"changes": changes,
		},
		UserID:    userID,
		CreatedAt: at,
	}
}

func errDepartmentRequired() error {
	return apperrors.NewBadRequestError("department is required before finalizing")
}

func bulkDraftIDs(movementIDs []string) ([]string, error) {
	ids := dedupe(movementIDs)
	if len(ids) == 0 || len(ids) > domain.MaxBulkDraft {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("between 1 and %d movement ids are required", domain.MaxBulkDraft))
	}
	return ids, nil
}
