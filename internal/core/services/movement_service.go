package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/movement_tracker/internal/apperrors"
	"github.com/SscSPs/movement_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/movement_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/movement_tracker/internal/core/ports/services"
	"github.com/SscSPs/movement_tracker/internal/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// movementService implements the MovementSvcFacade interface
type movementService struct {
	BaseService
	movementRepo portsrepo.MovementRepositoryWithTx
	approvalRepo portsrepo.ApprovalRepository
	areaRepo     portsrepo.AreaReader
	bankRepo     portsrepo.BankAccountRepositoryFacade
}

// MovementServiceOption is a function that configures a movementService
type MovementServiceOption func(*movementService)

// WithMovementEventSink sets the sink lifecycle events are published to
func WithMovementEventSink(sink portssvc.EventSink) MovementServiceOption {
	return func(s *movementService) {
		s.Events = sink
	}
}

// WithBankAccountRepository enables bank account checks on movements
func WithBankAccountRepository(repo portsrepo.BankAccountRepositoryFacade) MovementServiceOption {
	return func(s *movementService) {
		s.bankRepo = repo
	}
}

// NewMovementService creates a new movement service with the provided dependencies
func NewMovementService(
	movementRepo portsrepo.MovementRepositoryWithTx,
	approvalRepo portsrepo.ApprovalRepository,
	areaRepo portsrepo.AreaReader,
	authorizer portssvc.AuthorizationSvc,
	options ...MovementServiceOption,
) portssvc.MovementSvcFacade {
	s := &movementService{
		BaseService:  BaseService{Authorizer: authorizer},
		movementRepo: movementRepo,
		approvalRepo: approvalRepo,
		areaRepo:     areaRepo,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

var _ portssvc.MovementSvcFacade = (*movementService)(nil)

// CreateMovement records a PENDING movement in an area the caller can access.
func (s *movementService) CreateMovement(ctx context.Context, caller domain.Caller, req dto.CreateMovementRequest) (*domain.Movement, error) {
	if err := s.RequireVerified(caller); err != nil {
		return nil, err
	}
	if _, err := s.Authorizer.RequireAreaAccess(ctx, caller, req.AreaID); err != nil {
		return nil, err
	}
	if !req.Type.IsValid() {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("invalid movement type %q", req.Type))
	}
	if req.Amount <= 0 {
		return nil, apperrors.NewBadRequestError("amount must be greater than zero")
	}

	p := placement{areaID: req.AreaID, departmentID: req.DepartmentID, bankAccountID: req.BankAccountID, parentID: req.ParentID}
	if err := checkPlacement(ctx, s.areaRepo, s.bankRepo, s.movementRepo, p); err != nil {
		return nil, err
	}

	at := now()
	movement := domain.Movement{
		MovementID:         uuid.NewString(),
		AreaID:             req.AreaID,
		DepartmentID:       req.DepartmentID,
		BankAccountID:      req.BankAccountID,
		ParentID:           req.ParentID,
		Type:               req.Type,
		Status:             domain.InitialStatus(false),
		Amount:             req.Amount,
		CurrencyCode:       strings.ToUpper(req.CurrencyCode),
		Description:        strings.TrimSpace(req.Description),
		Category:           trimmedOrNil(req.Category),
		Reference:          trimmedOrNil(req.Reference),
		TransactionDate:    dateOnly(req.TransactionDate),
		IsInternalTransfer: req.IsInternalTransfer,
		AuditFields:        domain.NewAuditFields(caller.UserID, at),
	}

	if err := s.movementRepo.SaveMovement(ctx, movement); err != nil {
		s.LogError(ctx, err, "Failed to save movement", slog.String("area_id", req.AreaID))
		return nil, err
	}

	s.LogInfo(ctx, "Movement created",
		slog.String("movement_id", movement.MovementID),
		slog.String("area_id", movement.AreaID))
	s.Emit(ctx, domain.NewMovementEvent(domain.EventCreated, &movement, caller.UserID, at))
	return &movement, nil
}

// GetMovement returns a movement the caller can see.
func (s *movementService) GetMovement(ctx context.Context, caller domain.Caller, movementID string) (*domain.Movement, error) {
	movement, _, err := loadVisibleMovement(ctx, &s.BaseService, s.movementRepo, caller, movementID)
	if err != nil {
		return nil, err
	}
	return movement, nil
}

// ListMovements pages through the movements of the caller's areas, or
// through the caller's own movements when Mine is set.
func (s *movementService) ListMovements(ctx context.Context, caller domain.Caller, params dto.ListMovementsParams) ([]domain.Movement, *string, error) {
	filter := domain.MovementFilter{
		AreaID:       params.AreaID,
		DepartmentID: params.DepartmentID,
		Status:       params.Status,
		Type:         params.Type,
		Category:     params.Category,
		DateFrom:     params.DateFrom,
		DateTo:       params.DateTo,
	}

	if params.Mine {
		filter.Scope = domain.AreaScope{All: true}
		filter.CreatedBy = &caller.UserID
	} else {
		scope, err := s.Authorizer.AccessibleScope(ctx, caller)
		if err != nil {
			return nil, nil, err
		}
		if params.AreaID != nil && !scope.Contains(*params.AreaID) {
			return nil, nil, apperrors.NewNotFoundError("area not found")
		}
		filter.Scope = scope
	}
	if filter.Scope.IsEmpty() {
		return []domain.Movement{}, nil, nil
	}

	movements, next, err := s.movementRepo.ListMovements(ctx, filter, params.Limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list movements")
		return nil, nil, err
	}
	if movements == nil {
		movements = []domain.Movement{}
	}
	return movements, next, nil
}

// UpdateMovement applies a creator's edit. A reviewed movement goes back to
// PENDING with its review cleared, and the edit is recorded in history. The
// patch is applied to the row as locked inside the transaction.
func (s *movementService) UpdateMovement(ctx context.Context, caller domain.Caller, movementID string, req dto.UpdateMovementRequest) (*domain.Movement, error) {
	if err := s.RequireVerified(caller); err != nil {
		return nil, err
	}
	if req.IsEmpty() {
		return nil, apperrors.NewBadRequestError("no fields to update")
	}
	if (req.ClearCategory && req.Category != nil) || (req.ClearReference && req.Reference != nil) {
		return nil, apperrors.NewBadRequestError("a field cannot be set and cleared in the same request")
	}

	movement, _, err := loadVisibleMovement(ctx, &s.BaseService, s.movementRepo, caller, movementID)
	if err != nil {
		return nil, err
	}
	if movement.CreatedBy != caller.UserID {
		return nil, apperrors.NewForbiddenError("only the creator can edit this movement")
	}
	if _, err := domain.Transition(movement.Status, domain.ActionEdit); err != nil {
		return nil, err
	}
	preview := *movement
	if len(applyMovementUpdate(&preview, req)) == 0 {
		return movement, nil
	}

	at := now()
	var previous, next domain.MovementStatus
	var changes map[string]domain.FieldChange
	err = s.WithTx(ctx, s.movementRepo, func(tx pgx.Tx) error {
		locked, err := lockMovement(ctx, tx, s.movementRepo, movementID)
		if err != nil {
			return err
		}
		previous = locked.Status
		if next, err = domain.Transition(previous, domain.ActionEdit); err != nil {
			return err
		}

		originalArea := locked.AreaID
		movement = locked
		if changes = applyMovementUpdate(locked, req); len(changes) == 0 {
			return nil
		}
		if locked.Amount <= 0 {
			return apperrors.NewBadRequestError("amount must be greater than zero")
		}
		if locked.AreaID != originalArea {
			if _, err := s.Authorizer.RequireAreaAccess(ctx, caller, locked.AreaID); err != nil {
				return err
			}
		}
		p := placement{areaID: locked.AreaID, departmentID: locked.DepartmentID, bankAccountID: locked.BankAccountID}
		if err := checkPlacement(ctx, s.areaRepo, s.bankRepo, s.movementRepo, p); err != nil {
			return err
		}

		locked.Status = next
		if next == domain.StatusPending {
			locked.ClearReview()
		}
		locked.Touch(caller.UserID, at)

		ok, err := s.movementRepo.UpdateMovementTx(ctx, tx, *locked, previous)
		if err != nil {
			return err
		}
		if !ok {
			return staleMovementError(ctx, s.movementRepo, movementID, previous)
		}
		return s.approvalRepo.SaveApprovalsTx(ctx, tx, []domain.MovementApproval{newEditedEntry(movementID, previous, changes, caller.UserID, at)})
	})
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindInternal {
			s.LogError(ctx, err, "Failed to update movement", slog.String("movement_id", movementID))
		}
		return nil, err
	}
	if len(changes) == 0 {
		return movement, nil
	}

	s.LogInfo(ctx, "Movement updated",
		slog.String("movement_id", movementID),
		slog.String("previous_status", string(previous)),
		slog.String("status", string(next)))
	s.Emit(ctx, domain.NewMovementEvent(domain.EventUpdated, movement, caller.UserID, at))
	return movement, nil
}

// DeleteMovement soft deletes a movement. Deleted movements are invisible, so
// a second call reports NotFound.
func (s *movementService) DeleteMovement(ctx context.Context, caller domain.Caller, movementID string) error {
	if err := s.RequireVerified(caller); err != nil {
		return err
	}
	movement, _, err := loadVisibleMovement(ctx, &s.BaseService, s.movementRepo, caller, movementID)
	if err != nil {
		return err
	}
	if movement.CreatedBy != caller.UserID {
		return apperrors.NewForbiddenError("only the creator can delete this movement")
	}
	if _, err := domain.Transition(movement.Status, domain.ActionDelete); err != nil {
		return err
	}

	at := now()
	err = s.WithTx(ctx, s.movementRepo, func(tx pgx.Tx) error {
		n, err := s.movementRepo.SoftDeleteTx(ctx, tx, []string{movementID}, nil, caller.UserID, at)
		if err != nil {
			return err
		}
		if n == 0 {
			return apperrors.NewNotFoundError("movement not found")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.LogInfo(ctx, "Movement deleted", slog.String("movement_id", movementID))
	s.Emit(ctx, domain.NewMovementEvent(domain.EventDeleted, movement, caller.UserID, at))
	return nil
}

// ApproveMovement approves a PENDING movement.
func (s *movementService) ApproveMovement(ctx context.Context, caller domain.Caller, movementID string, req dto.ApproveMovementRequest) (*domain.Movement, error) {
	return s.review(ctx, caller, movementID, domain.ActionApprove, nil, req.Comment)
}

// RejectMovement rejects a PENDING movement.
func (s *movementService) RejectMovement(ctx context.Context, caller domain.Caller, movementID string, req dto.RejectMovementRequest) (*domain.Movement, error) {
	return s.review(ctx, caller, movementID, domain.ActionReject, trimmedOrNil(req.Reason), req.Comment)
}

func (s *movementService) review(ctx context.Context, caller domain.Caller, movementID string, action domain.LifecycleAction, reason, comment *string) (*domain.Movement, error) {
	if err := s.RequireVerified(caller); err != nil {
		return nil, err
	}
	movement, caps, err := loadVisibleMovement(ctx, &s.BaseService, s.movementRepo, caller, movementID)
	if err != nil {
		return nil, err
	}
	if !caps.IsManager {
		return nil, apperrors.NewForbiddenError("area manager role required")
	}
	next, err := domain.Transition(movement.Status, action)
	if err != nil {
		return nil, err
	}

	at := now()
	rv := domain.Review{Status: next, ActorID: caller.UserID, At: at, Reason: reason}
	entry := newReviewEntry(movementID, rv, comment)

	err = s.WithTx(ctx, s.movementRepo, func(tx pgx.Tx) error {
		n, err := s.movementRepo.ApplyReviewTx(ctx, tx, []string{movementID}, rv)
		if err != nil {
			return err
		}
		if n == 0 {
			// Another request changed the status after it was read.
			return staleMovementError(ctx, s.movementRepo, movementID, domain.StatusPending)
		}
		return s.approvalRepo.SaveApprovalsTx(ctx, tx, []domain.MovementApproval{entry})
	})
	if err != nil {
		return nil, err
	}

	rv.Apply(movement)
	s.LogInfo(ctx, "Movement reviewed",
		slog.String("movement_id", movementID),
		slog.String("status", string(next)))
	s.Emit(ctx, domain.NewMovementEvent(reviewEventType(next), movement, caller.UserID, at))
	return movement, nil
}

// BulkApprove approves every listed movement or none.
func (s *movementService) BulkApprove(ctx context.Context, caller domain.Caller, req dto.BulkReviewRequest) (int, error) {
	return s.bulkReview(ctx, caller, req.MovementIDs, domain.StatusApproved, nil, req.Comment)
}

// BulkReject rejects every listed movement or none.
func (s *movementService) BulkReject(ctx context.Context, caller domain.Caller, req dto.BulkReviewRequest) (int, error) {
	return s.bulkReview(ctx, caller, req.MovementIDs, domain.StatusRejected, trimmedOrNil(req.Reason), req.Comment)
}

// bulkReview validates the whole batch against locked rows before writing anything.
func (s *movementService) bulkReview(ctx context.Context, caller domain.Caller, movementIDs []string, status domain.MovementStatus, reason, comment *string) (int, error) {
	if err := s.RequireVerified(caller); err != nil {
		return 0, err
	}
	ids := dedupe(movementIDs)
	if len(ids) == 0 || len(ids) > domain.MaxBulkReview {
		return 0, apperrors.NewBadRequestError(fmt.Sprintf("between 1 and %d movement ids are required", domain.MaxBulkReview))
	}

	at := now()
	rv := domain.Review{Status: status, ActorID: caller.UserID, At: at, Reason: reason}
	var reviewed []domain.Movement

	err := s.WithTx(ctx, s.movementRepo, func(tx pgx.Tx) error {
		rows, err := s.movementRepo.FindMovementsByIDsForUpdate(ctx, tx, ids)
		if err != nil {
			return err
		}
		if err := s.validateBulkReview(ctx, caller, ids, rows); err != nil {
			return err
		}

		n, err := s.movementRepo.ApplyReviewTx(ctx, tx, ids, rv)
		if err != nil {
			return err
		}
		if int(n) != len(ids) {
			return apperrors.NewConflictError(fmt.Sprintf("%d movement(s) are not pending", len(ids)-int(n)))
		}

		entries := make([]domain.MovementApproval, len(rows))
		for i := range rows {
			entries[i] = newReviewEntry(rows[i].MovementID, rv, comment)
		}
		if err := s.approvalRepo.SaveApprovalsTx(ctx, tx, entries); err != nil {
			return err
		}
		reviewed = rows
		return nil
	})
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindInternal {
			s.LogError(ctx, err, "Bulk review failed", slog.Int("count", len(ids)))
		}
		return 0, err
	}

	events := make([]domain.MovementEvent, len(reviewed))
	for i := range reviewed {
		rv.Apply(&reviewed[i])
		events[i] = domain.NewMovementEvent(reviewEventType(status), &reviewed[i], caller.UserID, at)
	}
	s.LogInfo(ctx, "Movements reviewed in bulk",
		slog.Int("count", len(reviewed)),
		slog.String("status", string(status)))
	s.Emit(ctx, events...)
	return len(reviewed), nil
}

// validateBulkReview checks existence, then area roles, then status. Rows in
// areas the caller cannot see count as missing.
func (s *movementService) validateBulkReview(ctx context.Context, caller domain.Caller, ids []string, rows []domain.Movement) error {
	capsByArea := map[string]domain.Capabilities{}
	for _, m := range rows {
		if _, ok := capsByArea[m.AreaID]; ok {
			continue
		}
		caps, err := s.Authorizer.ResolveCapabilities(ctx, caller, m.AreaID)
		if err != nil {
			return err
		}
		capsByArea[m.AreaID] = caps
	}

	missing := len(ids) - len(rows)
	notManaged := map[string]struct{}{}
	notPending := 0
	for _, m := range rows {
		caps := capsByArea[m.AreaID]
		switch {
		case caps.None():
			missing++
		case !caps.IsManager:
			notManaged[m.AreaID] = struct{}{}
		case !domain.CanTransition(m.Status, domain.ActionApprove):
			notPending++
		}
	}

	if missing > 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("%d movement(s) not found", missing))
	}
	if len(notManaged) > 0 {
		return apperrors.NewForbiddenError(fmt.Sprintf("area manager role required in %d area(s)", len(notManaged)))
	}
	if notPending > 0 {
		return apperrors.NewConflictError(fmt.Sprintf("%d movement(s) are not pending", notPending))
	}
	return nil
}

// AddComment appends a COMMENT entry. Area managers only.
func (s *movementService) AddComment(ctx context.Context, caller domain.Caller, movementID string, req dto.AddCommentRequest) (*domain.MovementApproval, error) {
	if err := s.RequireVerified(caller); err != nil {
		return nil, err
	}
	comment := strings.TrimSpace(req.Comment)
	if comment == "" {
		return nil, apperrors.NewBadRequestError("comment is required")
	}
	movement, caps, err := loadVisibleMovement(ctx, &s.BaseService, s.movementRepo, caller, movementID)
	if err != nil {
		return nil, err
	}
	if !caps.IsManager {
		return nil, apperrors.NewForbiddenError("area manager role required")
	}
	if _, err := domain.Transition(movement.Status, domain.ActionComment); err != nil {
		return nil, err
	}

	at := now()
	entry := domain.MovementApproval{
		ApprovalID: uuid.NewString(),
		MovementID: movementID,
		Action:     domain.ApprovalComment,
		Comment:    &comment,
		UserID:     caller.UserID,
		CreatedAt:  at,
	}
	if err := s.approvalRepo.SaveApproval(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save comment", slog.String("movement_id", movementID))
		return nil, err
	}

	s.Emit(ctx, domain.NewMovementEvent(domain.EventCommented, movement, caller.UserID, at))
	return &entry, nil
}

// GetApprovalHistory returns the movement's history, oldest first. Creator only.
func (s *movementService) GetApprovalHistory(ctx context.Context, caller domain.Caller, movementID string) ([]domain.MovementApproval, error) {
	movement, _, err := loadVisibleMovement(ctx, &s.BaseService, s.movementRepo, caller, movementID)
	if err != nil {
		return nil, err
	}
	if movement.CreatedBy != caller.UserID {
		return nil, apperrors.NewForbiddenError("only the creator can view this history")
	}

	history, err := s.approvalRepo.ListApprovalsByMovementID(ctx, movementID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list approval history", slog.String("movement_id", movementID))
		return nil, err
	}
	if history == nil {
		history = []domain.MovementApproval{}
	}
	return history, nil
}

// staleMovementError explains why a guarded write matched no row.
func staleMovementError(ctx context.Context, reader portsrepo.MovementReader, movementID string, expected domain.MovementStatus) error {
	current, err := reader.FindMovementByID(ctx, movementID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("movement not found")
		}
		return err
	}
	return apperrors.NewConflictError(fmt.Sprintf("movement is %s, expected %s", current.Status, expected))
}

// lockMovement re-reads a live movement under a row lock inside tx.
func lockMovement(ctx context.Context, tx pgx.Tx, repo portsrepo.MovementReader, movementID string) (*domain.Movement, error) {
	rows, err := repo.FindMovementsByIDsForUpdate(ctx, tx, []string{movementID})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperrors.NewNotFoundError("movement not found")
	}
	return &rows[0], nil
}

// loadVisibleMovement fetches a movement and the caller's capabilities in its
// area. Callers with no capability who did not create it get NotFound, so the
// movement's existence is not revealed.
func loadVisibleMovement(ctx context.Context, base *BaseService, reader portsrepo.MovementReader, caller domain.Caller, movementID string) (*domain.Movement, domain.Capabilities, error) {
	movement, err := reader.FindMovementByID(ctx, movementID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, domain.Capabilities{}, apperrors.NewNotFoundError("movement not found")
		}
		base.LogError(ctx, err, "Failed to find movement", slog.String("movement_id", movementID))
		return nil, domain.Capabilities{}, err
	}
	caps, err := base.Authorizer.ResolveCapabilities(ctx, caller, movement.AreaID)
	if err != nil {
		return nil, domain.Capabilities{}, err
	}
	if caps.None() && movement.CreatedBy != caller.UserID {
		return nil, caps, apperrors.NewNotFoundError("movement not found")
	}
	return movement, caps, nil
}

// placement is where a movement sits: its area and the optional references
// that must live in the same area.
type placement struct {
	areaID        string
	departmentID  *string
	bankAccountID *string
	parentID      *string
}

func checkPlacement(ctx context.Context, areas portsrepo.AreaReader, banks portsrepo.BankAccountRepositoryFacade, movements portsrepo.MovementReader, p placement) error {
	if p.departmentID != nil {
		dept, err := areas.FindDepartmentByID(ctx, *p.departmentID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewBadRequestError("department not found")
			}
			return err
		}
		if dept.AreaID != p.areaID {
			return apperrors.NewBadRequestError("department does not belong to the movement's area")
		}
	}
	if p.bankAccountID != nil && banks != nil {
		account, err := banks.FindBankAccountByID(ctx, *p.bankAccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewBadRequestError("bank account not found")
			}
			return err
		}
		if account.AreaID != p.areaID {
			return apperrors.NewBadRequestError("bank account does not belong to the movement's area")
		}
	}
	if p.parentID != nil {
		parent, err := movements.FindMovementByID(ctx, *p.parentID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewBadRequestError("parent movement not found")
			}
			return err
		}
		if parent.AreaID != p.areaID {
			return apperrors.NewBadRequestError("parent movement belongs to another area")
		}
	}
	return nil
}

// applyMovementUpdate copies the supplied fields onto m and returns what
// actually changed, keyed by JSON field name. Moving to another area clears
// the department unless a new one is supplied. Category and reference are
// only cleared through their explicit flags.
func applyMovementUpdate(m *domain.Movement, req dto.UpdateMovementRequest) map[string]domain.FieldChange {
	changes := domain.DraftPatch{AreaID: req.AreaID, DepartmentID: req.DepartmentID, Category: trimmedOrNil(req.Category)}.ApplyTo(m)

	if req.BankAccountID != nil && !sameString(m.BankAccountID, req.BankAccountID) {
		changes["bankAccountID"] = domain.FieldChange{From: derefString(m.BankAccountID), To: *req.BankAccountID}
		v := *req.BankAccountID
		m.BankAccountID = &v
	}
	if req.Type != nil && *req.Type != m.Type {
		changes["type"] = domain.FieldChange{From: m.Type, To: *req.Type}
		m.Type = *req.Type
	}
	if req.Amount != nil && *req.Amount != m.Amount {
		changes["amount"] = domain.FieldChange{From: m.Amount, To: *req.Amount}
		m.Amount = *req.Amount
	}
	if req.CurrencyCode != nil && !strings.EqualFold(*req.CurrencyCode, m.CurrencyCode) {
		code := strings.ToUpper(*req.CurrencyCode)
		changes["currencyCode"] = domain.FieldChange{From: m.CurrencyCode, To: code}
		m.CurrencyCode = code
	}
	if req.Description != nil && strings.TrimSpace(*req.Description) != m.Description {
		desc := strings.TrimSpace(*req.Description)
		changes["description"] = domain.FieldChange{From: m.Description, To: desc}
		m.Description = desc
	}
	if ref := trimmedOrNil(req.Reference); ref != nil && !sameString(m.Reference, ref) {
		changes["reference"] = domain.FieldChange{From: derefString(m.Reference), To: *ref}
		m.Reference = ref
	}
	if req.ClearCategory && m.Category != nil {
		changes["category"] = domain.FieldChange{From: *m.Category, To: nil}
		m.Category = nil
	}
	if req.ClearReference && m.Reference != nil {
		changes["reference"] = domain.FieldChange{From: *m.Reference, To: nil}
		m.Reference = nil
	}
	if req.TransactionDate != nil && !dateOnly(*req.TransactionDate).Equal(m.TransactionDate) {
		d := dateOnly(*req.TransactionDate)
		changes["transactionDate"] = domain.FieldChange{From: m.TransactionDate.Format("2006-01-02"), To: d.Format("2006-01-02")}
		m.TransactionDate = d
	}
	if req.IsInternalTransfer != nil && *req.IsInternalTransfer != m.IsInternalTransfer {
		changes["isInternalTransfer"] = domain.FieldChange{From: m.IsInternalTransfer, To: *req.IsInternalTransfer}
		m.IsInternalTransfer = *req.IsInternalTransfer
	}
	return changes
}

func newEditedEntry(movementID string, previous domain.MovementStatus, changes map[string]domain.FieldChange, userID string, at time.Time) domain.MovementApproval {
	return domain.MovementApproval{
		ApprovalID: uuid.NewString(),
		MovementID: movementID,
		Action:     domain.ApprovalEdited,
		Metadata: map[string]any{
			"previousStatus": previous,
			"fields":         sortedKeys(changes),
			"changes":        changes,
		},
		UserID:    userID,
		CreatedAt: at,
	}
}

func newReviewEntry(movementID string, rv domain.Review, comment *string) domain.MovementApproval {
	action := domain.ApprovalApproved
	metadata := map[string]any{"previousStatus": domain.StatusPending}
	if rv.Status == domain.StatusRejected {
		action = domain.ApprovalRejected
		if rv.Reason != nil {
			metadata["reason"] = *rv.Reason
		}
	}
	return domain.MovementApproval{
		ApprovalID: uuid.NewString(),
		MovementID: movementID,
		Action:     action,
		Comment:    trimmedOrNil(comment),
		Metadata:   metadata,
		UserID:     rv.ActorID,
		CreatedAt:  rv.At,
	}
}

func reviewEventType(status domain.MovementStatus) domain.EventType {
	if status == domain.StatusRejected {
		return domain.EventRejected
	}
	return domain.EventApproved
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func sameString(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func derefString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func sortedKeys(changes map[string]domain.FieldChange) []string {
	keys := make([]string, 0, len(changes))
	for k := range changes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
