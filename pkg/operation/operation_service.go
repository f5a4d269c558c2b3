package operation

import (
	"context"
	"encoding/json"

	"github.com/jamshiddins/vendbot/domain"
	"github.com/jamshiddins/vendbot/entities"
)

type (
	// RecordParams is everything one audit record carries. Metadata is
	// marshalled to JSON; photos become evidence rows under the operation.
	RecordParams struct {
		UserID        uint
		OperationType entities.OperationType
		EntityType    string
		EntityID      *uint
		Description   string
		Success       bool
		ErrorMessage  string
		Metadata      map[string]interface{}
		Photos        []domain.PhotoInput
	}

	OperationService interface {
		Record(ctx context.Context, params RecordParams) (*entities.Operation, error)
		History(ctx context.Context, filter domain.HistoryFilter) ([]domain.OperationResponse, error)
		AttachPhoto(ctx context.Context, req domain.AttachPhotoRequest, actor domain.Actor) error
	}

	operationService struct {
		operationRepository OperationRepository
	}
)

func NewOperationService(operationRepository OperationRepository) OperationService {
	return &operationService{operationRepository: operationRepository}
}

// BuildRecord turns params into an unsaved operation row.
func BuildRecord(params RecordParams) *entities.Operation {
	op := &entities.Operation{
		UserID:        params.UserID,
		OperationType: params.OperationType,
		EntityType:    params.EntityType,
		EntityID:      params.EntityID,
		Description:   params.Description,
		Success:       params.Success,
		ErrorMessage:  params.ErrorMessage,
	}
	if len(params.Metadata) > 0 {
		if b, err := json.Marshal(params.Metadata); err == nil {
			op.Metadata = string(b)
		}
	}
	for _, p := range params.Photos {
		op.Photos = append(op.Photos, entities.Photo{
			UserID:    params.UserID,
			FileKey:   p.FileKey,
			PhotoType: entities.PhotoType(p.PhotoType),
			Caption:   p.Caption,
		})
	}
	return op
}

func (s *operationService) Record(ctx context.Context, params RecordParams) (*entities.Operation, error) {
	op := BuildRecord(params)
	if err := s.operationRepository.Create(ctx, op); err != nil {
		return nil, err
	}
	return op, nil
}

func (s *operationService) History(ctx context.Context, filter domain.HistoryFilter) ([]domain.OperationResponse, error) {
	ops, err := s.operationRepository.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	res := make([]domain.OperationResponse, 0, len(ops))
	for i := range ops {
		res = append(res, ToResponse(&ops[i]))
	}
	return res, nil
}

func (s *operationService) AttachPhoto(ctx context.Context, req domain.AttachPhotoRequest, actor domain.Actor) error {
	op, err := s.operationRepository.GetByID(ctx, req.OperationID)
	if err != nil {
		return err
	}
	// Evidence may only be attached by the actor who performed the
	// operation, or an admin.
	if op.UserID != actor.UserID && !actor.Can(domain.CapabilityAdmin) {
		return domain.ErrUserNotAllowed
	}
	return s.operationRepository.AddPhoto(ctx, &entities.Photo{
		OperationID: op.ID,
		UserID:      actor.UserID,
		FileKey:     req.FileKey,
		PhotoType:   entities.PhotoType(req.PhotoType),
		Caption:     req.Caption,
	})
}

func ToResponse(op *entities.Operation) domain.OperationResponse {
	res := domain.OperationResponse{
		ID:            op.ID,
		UserID:        op.UserID,
		OperationType: string(op.OperationType),
		EntityType:    op.EntityType,
		EntityID:      op.EntityID,
		Description:   op.Description,
		Success:       op.Success,
		ErrorMessage:  op.ErrorMessage,
		Metadata:      op.Metadata,
		CreatedAt:     op.CreatedAt,
	}
	for _, p := range op.Photos {
		res.Photos = append(res.Photos, domain.PhotoResponse{
			ID:        p.ID,
			FileKey:   p.FileKey,
			PhotoType: string(p.PhotoType),
			Caption:   p.Caption,
		})
	}
	return res
}
