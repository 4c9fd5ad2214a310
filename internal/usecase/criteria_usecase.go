package usecase

import (
	"log"

	"github.com/accredhub/backend/internal/dto"
	"github.com/accredhub/backend/internal/model"
	"github.com/accredhub/backend/internal/util"
	"github.com/google/uuid"
)

type CriteriaRepo interface {
	Create(criteria *model.Criteria) error
	Save(criteria *model.Criteria) error
	FindByID(id uuid.UUID) (*model.Criteria, error)
	FindScoped(schoolID *uuid.UUID) ([]model.Criteria, error)
	FindAllSorted() ([]model.Criteria, error)
	FindByIDsInSchool(ids []uuid.UUID, schoolID *uuid.UUID) ([]model.Criteria, error)
	FindByCodeInSchool(code string, schoolID *uuid.UUID) (*model.Criteria, error)
	FindConflict(code, name string, schoolID *uuid.UUID) (*model.Criteria, error)
	FindBySchool(schoolID *uuid.UUID) ([]model.Criteria, error)
	Upsert(code, name, description string, schoolID *uuid.UUID) (bool, error)
}

type CriteriaUserRepo interface {
	FindByID(id uuid.UUID) (*model.User, error)
	Save(user *model.User) error
	FindFacultyByNames(names []string, schoolID *uuid.UUID) ([]model.User, error)
	FindFacultyBySchool(schoolID *uuid.UUID) ([]model.User, error)
	AddAssignment(user *model.User, criteria *model.Criteria) error
}

type CriteriaUsecase struct {
	criteria CriteriaRepo
	users    CriteriaUserRepo
}

func NewCriteriaUsecase(criteria CriteriaRepo, users CriteriaUserRepo) *CriteriaUsecase {
	return &CriteriaUsecase{criteria: criteria, users: users}
}

func (uc *CriteriaUsecase) Create(actor Actor, req dto.CreateCriteriaRequest) (*model.Criteria, error) {
	if req.Code == "" || req.Name == "" {
		return nil, util.ErrValidation("Both code and name are required")
	}

	conflict, err := uc.criteria.FindConflict(req.Code, req.Name, actor.SchoolID)
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		return nil, util.ErrConflict("Criteria with the same code or name already exists")
	}

	criteria := &model.Criteria{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		MaxMarks:    model.DefaultMaxMarks,
		SchoolID:    actor.SchoolID,
	}
	if err := uc.criteria.Create(criteria); err != nil {
		return nil, err
	}
	return criteria, nil
}

func (uc *CriteriaUsecase) List(actor Actor) ([]model.Criteria, error) {
	return uc.criteria.FindScoped(actor.SchoolID)
}

// ListForEvaluator bypasses tenant scoping: evaluators review across schools.
func (uc *CriteriaUsecase) ListForEvaluator() ([]model.Criteria, error) {
	return uc.criteria.FindAllSorted()
}

// ListMine restricts to the caller's assignment set inside their school. An
// empty assignment set short-circuits without touching storage.
func (uc *CriteriaUsecase) ListMine(actor Actor) ([]model.Criteria, error) {
	if len(actor.AssignedCriteriaIDs) == 0 {
		return []model.Criteria{}, nil
	}
	return uc.criteria.FindByIDsInSchool(actor.AssignedCriteriaIDs, actor.SchoolID)
}

// BulkUpsert applies each item independently, keyed by (code, school).
// Per-item failures are counted, not fatal.
func (uc *CriteriaUsecase) BulkUpsert(actor Actor, req dto.BulkUpsertRequest) (*dto.BulkUpsertResult, error) {
	if len(req.Items) == 0 {
		return nil, util.ErrValidation("items array is required")
	}

	result := &dto.BulkUpsertResult{}
	for _, item := range req.Items {
		if item.Code == "" {
			result.Failed++
			continue
		}
		created, err := uc.criteria.Upsert(item.Code, item.Name, item.Description, actor.SchoolID)
		if err != nil {
			log.Printf("bulk upsert failed for criteria %s: %v", item.Code, err)
			result.Failed++
			continue
		}
		if created {
			result.Upserted++
		} else {
			result.Modified++
		}
	}
	return result, nil
}

// Assign appends one criterion to one faculty's assignment set. Records with
// no school are adopted into the acting admin's school before assignment.
func (uc *CriteriaUsecase) Assign(actor Actor, req dto.AssignCriteriaRequest) error {
	if err := util.ValidateStruct(req); err != nil {
		return err
	}

	facultyID, err := uuid.Parse(req.FacultyID)
	if err != nil {
		return util.ErrNotFound("Faculty not found")
	}
	criteriaID, err := uuid.Parse(req.CriteriaID)
	if err != nil {
		return util.ErrNotFound("Criteria not found")
	}

	faculty, err := uc.users.FindByID(facultyID)
	if err != nil {
		return err
	}
	if faculty == nil || faculty.Role != model.RoleFaculty {
		return util.ErrNotFound("Faculty not found")
	}

	criteria, err := uc.criteria.FindByID(criteriaID)
	if err != nil {
		return err
	}
	if criteria == nil {
		return util.ErrNotFound("Criteria not found")
	}

	facultyInScope := faculty.SchoolID == nil || actor.InSchool(faculty.SchoolID)
	criteriaInScope := criteria.SchoolID == nil || actor.InSchool(criteria.SchoolID)
	if !facultyInScope || !criteriaInScope {
		return util.ErrForbidden("Faculty or criteria not found in your school")
	}

	// Legacy records without a school are adopted on first assignment.
	if faculty.SchoolID == nil {
		faculty.SchoolID = actor.SchoolID
		if err := uc.users.Save(faculty); err != nil {
			return err
		}
	}
	if criteria.SchoolID == nil {
		criteria.SchoolID = actor.SchoolID
		if err := uc.criteria.Save(criteria); err != nil {
			return err
		}
	}

	if faculty.HasAssigned(criteria.ID) {
		return util.ErrConflict("Criteria already assigned to this faculty")
	}

	return uc.users.AddAssignment(faculty, criteria)
}

// AssignByNames assigns one criterion (by code) to several faculty (by exact
// name). Already-assigned pairs are skipped; names that resolve to no faculty
// record are reported back, not treated as failures.
func (uc *CriteriaUsecase) AssignByNames(actor Actor, req dto.AssignByNamesRequest) (*dto.AssignByNamesResult, error) {
	if req.CriteriaCode == "" || req.FacultyNames == nil {
		return nil, util.ErrValidation("criteriaCode and facultyNames[] are required")
	}

	criteria, err := uc.criteria.FindByCodeInSchool(req.CriteriaCode, actor.SchoolID)
	if err != nil {
		return nil, err
	}
	if criteria == nil {
		return nil, util.ErrNotFound("Criteria not found in your school")
	}

	faculties, err := uc.users.FindFacultyByNames(req.FacultyNames, actor.SchoolID)
	if err != nil {
		return nil, err
	}

	found := make(map[string]bool, len(faculties))
	for _, f := range faculties {
		found[f.Name] = true
	}
	missing := []string{}
	for _, name := range req.FacultyNames {
		if !found[name] {
			missing = append(missing, name)
		}
	}

	assigned := 0
	for i := range faculties {
		f := &faculties[i]
		if f.HasAssigned(criteria.ID) {
			continue
		}
		if err := uc.users.AddAssignment(f, criteria); err != nil {
			log.Printf("assignment failed for faculty %s: %v", f.ID, err)
			continue
		}
		assigned++
	}

	return &dto.AssignByNamesResult{AssignedCount: assigned, Missing: missing}, nil
}

// WithAssignments annotates every school criterion with its assigned faculty.
// The join runs in memory over the tenant's faculty assignment sets.
func (uc *CriteriaUsecase) WithAssignments(actor Actor) ([]dto.CriteriaWithFaculty, error) {
	criterias, err := uc.criteria.FindBySchool(actor.SchoolID)
	if err != nil {
		return nil, err
	}
	faculties, err := uc.users.FindFacultyBySchool(actor.SchoolID)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*dto.CriteriaWithFaculty, len(criterias))
	annotated := make([]dto.CriteriaWithFaculty, len(criterias))
	for i, c := range criterias {
		annotated[i] = dto.CriteriaWithFaculty{Criteria: c, Faculty: []dto.FacultyRef{}}
		byID[c.ID] = &annotated[i]
	}
	for _, f := range faculties {
		for _, assigned := range f.AssignedCriteria {
			if bucket, ok := byID[assigned.ID]; ok {
				bucket.Faculty = append(bucket.Faculty, dto.FacultyRef{
					ID:    f.ID,
					Name:  f.Name,
					Email: f.Email,
				})
			}
		}
	}
	return annotated, nil
}
