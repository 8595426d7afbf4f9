package service

import (
	"fmt"
	"paygate/api/internal/domain"
	"paygate/api/internal/infra/postgres"
	"paygate/api/internal/repository"

	"gorm.io/gorm"
)

type MembersService struct {
	repo repository.Members
	db   *gorm.DB
}

func NewMembersService(db *gorm.DB, repo repository.Members) *MembersService {
	return &MembersService{repo: repo, db: db}
}

func (s *MembersService) Exists(uid string) (bool, error) {
	if uid == "" {
		return false, nil
	}

	ok, err := s.repo.Exists(s.db, uid)
	if err != nil {
		return false, fmt.Errorf("member exists: %w", err)
	}
	return ok, nil
}

func (s *MembersService) FindByUID(uid string) (*domain.Members, error) {
	if uid == "" {
		return nil, domain.ErrMemberNotFound
	}

	member, err := s.repo.FindByUID(s.db, uid)
	if err != nil {
		if postgres.IsNotFound(err) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, fmt.Errorf("find member: %w", err)
	}
	return member, nil
}
