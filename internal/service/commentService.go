package service

import (
	"context"

	repository "github.com/dskendzo/eventplanner/internal/database/postgres"
	"github.com/dskendzo/eventplanner/internal/entity"
)

type AddCommentRequest struct {
	Content  string `json:"content" binding:"required,max=1000"`
	ParentID *int64 `json:"parent_id"`
}

type commentService struct {
	commentRepo repository.CommentRepository
	eventRepo   repository.EventRepository
}

func NewCommentService(commentRepo repository.CommentRepository, eventRepo repository.EventRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		eventRepo:   eventRepo,
	}
}

func (s *commentService) AddComment(ctx context.Context, authorID, eventID int64, req *AddCommentRequest) (*entity.Comment, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}

	if req.ParentID != nil {
		parent, err := s.commentRepo.GetByID(ctx, *req.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.EventID != eventID {
			return nil, entity.ErrCommentNotFound
		}
	}

	comment := &entity.Comment{
		EventID:  eventID,
		AuthorID: authorID,
		ParentID: req.ParentID,
		Content:  req.Content,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

func (s *commentService) GetEventComments(ctx context.Context, eventID int64) ([]*entity.Comment, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByEvent(ctx, eventID)
}

func (s *commentService) UpdateComment(ctx context.Context, actorID int64, actorRole entity.UserRole, commentID int64, content string) (*entity.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}

	if comment.AuthorID != actorID && actorRole != entity.RoleAdmin {
		return nil, entity.ErrForbidden
	}

	comment.Content = content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

func (s *commentService) DeleteComment(ctx context.Context, actorID int64, actorRole entity.UserRole, commentID int64) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}

	if comment.AuthorID != actorID && actorRole != entity.RoleAdmin {
		return entity.ErrForbidden
	}

	return s.commentRepo.Delete(ctx, commentID)
}
