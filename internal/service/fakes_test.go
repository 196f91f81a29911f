package service

import (
	"sort"

	"github.com/hmiyake/classquiz/internal/model"
	"gorm.io/gorm"
)

// In-memory repository fakes. They implement just enough of the repository
// contracts for the service tests; methods the tests never reach panic so an
// accidental call shows up immediately.

type fakeTestRepo struct {
	tests map[uint]*model.Test
	// questionSource backs FindByIDWithQuestions; classroomTests backs
	// FindByClassroomID (classroom id -> test ids).
	questionSource *fakeQuestionRepo
	classroomTests map[uint][]uint
}

func newFakeTestRepo(tests ...*model.Test) *fakeTestRepo {
	r := &fakeTestRepo{
		tests:          make(map[uint]*model.Test),
		classroomTests: make(map[uint][]uint),
	}
	for _, t := range tests {
		r.tests[t.ID] = t
	}
	return r
}

func (r *fakeTestRepo) Create(test *model.Test) error {
	if test.ID == 0 {
		test.ID = uint(len(r.tests) + 1)
	}
	r.tests[test.ID] = test
	return nil
}

func (r *fakeTestRepo) FindByID(id uint) (*model.Test, error) {
	t, ok := r.tests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (r *fakeTestRepo) FindByIDWithQuestions(id uint) (*model.Test, error) {
	t, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}
	out := *t
	if r.questionSource != nil {
		out.Questions, _ = r.questionSource.FindByTestID(id)
	}
	return &out, nil
}

func (r *fakeTestRepo) FindByClassroomID(classroomID uint) ([]model.Test, error) {
	var out []model.Test
	for _, testID := range r.classroomTests[classroomID] {
		if t, ok := r.tests[testID]; ok {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeTestRepo) UpdateTotalQuestions(testID uint, total int) error {
	t, ok := r.tests[testID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	t.TotalQuestions = total
	return nil
}

func (r *fakeTestRepo) Delete(id uint) error {
	delete(r.tests, id)
	return nil
}

type fakeQuestionRepo struct {
	questions []*model.Question
	nextID    uint
}

func newFakeQuestionRepo(questions ...*model.Question) *fakeQuestionRepo {
	r := &fakeQuestionRepo{nextID: 1}
	for _, q := range questions {
		r.questions = append(r.questions, q)
		if q.ID >= r.nextID {
			r.nextID = q.ID + 1
		}
	}
	return r
}

func (r *fakeQuestionRepo) Create(question *model.Question) error {
	if question.ID == 0 {
		question.ID = r.nextID
		r.nextID++
	}
	r.questions = append(r.questions, question)
	return nil
}

func (r *fakeQuestionRepo) FindByID(id uint) (*model.Question, error) {
	for _, q := range r.questions {
		if q.ID == id {
			return q, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeQuestionRepo) FindByIDAndTest(id, testID uint) (*model.Question, error) {
	for _, q := range r.questions {
		if q.ID == id && q.TestID == testID {
			return q, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeQuestionRepo) FindByTestID(testID uint) ([]model.Question, error) {
	var out []model.Question
	for _, q := range r.questions {
		if q.TestID == testID {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (r *fakeQuestionRepo) CountByTestID(testID uint) (int64, error) {
	var n int64
	for _, q := range r.questions {
		if q.TestID == testID {
			n++
		}
	}
	return n, nil
}

func (r *fakeQuestionRepo) Delete(id uint) error {
	for i, q := range r.questions {
		if q.ID == id {
			r.questions = append(r.questions[:i], r.questions[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeOptionRepo struct {
	options []*model.Option
	nextID  uint
}

func newFakeOptionRepo(options ...*model.Option) *fakeOptionRepo {
	r := &fakeOptionRepo{nextID: 1}
	for _, o := range options {
		r.options = append(r.options, o)
		if o.ID >= r.nextID {
			r.nextID = o.ID + 1
		}
	}
	return r
}

func (r *fakeOptionRepo) Create(option *model.Option) error {
	if option.ID == 0 {
		option.ID = r.nextID
		r.nextID++
	}
	r.options = append(r.options, option)
	return nil
}

func (r *fakeOptionRepo) UpdateName(id uint, name string) error {
	for _, o := range r.options {
		if o.ID == id {
			o.Name = name
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeOptionRepo) FindByID(id uint) (*model.Option, error) {
	for _, o := range r.options {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeOptionRepo) FindByIDAndQuestion(id, questionID uint) (*model.Option, error) {
	for _, o := range r.options {
		if o.ID == id && o.QuestionID == questionID {
			return o, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeOptionRepo) FindByQuestionID(questionID uint) ([]model.Option, error) {
	var out []model.Option
	for _, o := range r.options {
		if o.QuestionID == questionID {
			out = append(out, *o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeOptionRepo) FindCorrectByQuestionID(questionID uint) ([]model.Option, error) {
	var out []model.Option
	for _, o := range r.options {
		if o.QuestionID == questionID && o.IsCorrect {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeOptionRepo) Delete(id uint) error {
	for i, o := range r.options {
		if o.ID == id {
			r.options = append(r.options[:i], r.options[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeSubmissionRepo struct {
	rows   []model.UserTestSubmission
	nextID uint
}

func newFakeSubmissionRepo() *fakeSubmissionRepo {
	return &fakeSubmissionRepo{nextID: 1}
}

func (r *fakeSubmissionRepo) Create(submission *model.UserTestSubmission) error {
	submission.ID = r.nextID
	r.nextID++
	r.rows = append(r.rows, *submission)
	return nil
}

func (r *fakeSubmissionRepo) Upsert(submission *model.UserTestSubmission) error {
	for i := range r.rows {
		if r.rows[i].UserID == submission.UserID &&
			r.rows[i].TestID == submission.TestID &&
			r.rows[i].QuestionID == submission.QuestionID {
			submission.ID = r.rows[i].ID
			r.rows[i] = *submission
			return nil
		}
	}
	return r.Create(submission)
}

func (r *fakeSubmissionRepo) FindPendingByUserAndTest(userID, testID uint) ([]model.UserTestSubmission, error) {
	var out []model.UserTestSubmission
	for _, row := range r.rows {
		if row.UserID == userID && row.TestID == testID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *fakeSubmissionRepo) FindPendingForUpdate(tx *gorm.DB, userID, testID uint) ([]model.UserTestSubmission, error) {
	return r.FindPendingByUserAndTest(userID, testID)
}

func (r *fakeSubmissionRepo) DeleteByIDs(tx *gorm.DB, ids []uint) error {
	keep := r.rows[:0]
	drop := make(map[uint]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	for _, row := range r.rows {
		if !drop[row.ID] {
			keep = append(keep, row)
		}
	}
	r.rows = keep
	return nil
}

func (r *fakeSubmissionRepo) DeleteByUser(userID uint) error {
	keep := r.rows[:0]
	for _, row := range r.rows {
		if row.UserID != userID {
			keep = append(keep, row)
		}
	}
	r.rows = keep
	return nil
}

type fakeSchoolRepo struct {
	schools map[uint]*model.School
	nextID  uint
}

func newFakeSchoolRepo(schools ...*model.School) *fakeSchoolRepo {
	r := &fakeSchoolRepo{schools: make(map[uint]*model.School), nextID: 1}
	for _, s := range schools {
		r.schools[s.ID] = s
		if s.ID >= r.nextID {
			r.nextID = s.ID + 1
		}
	}
	return r
}

func (r *fakeSchoolRepo) Create(school *model.School) error {
	if school.ID == 0 {
		school.ID = r.nextID
		r.nextID++
	}
	r.schools[school.ID] = school
	return nil
}

func (r *fakeSchoolRepo) FindByID(id uint) (*model.School, error) {
	s, ok := r.schools[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *fakeSchoolRepo) FindByNameAndPassword(name, password string) (*model.School, error) {
	for _, s := range r.schools {
		if s.Name == name && s.Password == password {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeSchoolRepo) Delete(id uint) error {
	delete(r.schools, id)
	return nil
}

type fakeClassroomRepo struct {
	classrooms map[uint]*model.Classroom
	students   map[uint][]uint // classroom id -> student ids
	nextID     uint
}

func newFakeClassroomRepo(classrooms ...*model.Classroom) *fakeClassroomRepo {
	r := &fakeClassroomRepo{
		classrooms: make(map[uint]*model.Classroom),
		students:   make(map[uint][]uint),
		nextID:     1,
	}
	for _, c := range classrooms {
		r.classrooms[c.ID] = c
		if c.ID >= r.nextID {
			r.nextID = c.ID + 1
		}
	}
	return r
}

func (r *fakeClassroomRepo) Create(classroom *model.Classroom) error {
	if classroom.ID == 0 {
		classroom.ID = r.nextID
		r.nextID++
	}
	r.classrooms[classroom.ID] = classroom
	return nil
}

func (r *fakeClassroomRepo) FindByID(id uint) (*model.Classroom, error) {
	c, ok := r.classrooms[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *fakeClassroomRepo) FindByName(name string) (*model.Classroom, error) {
	for _, c := range r.classrooms {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeClassroomRepo) FindByStudentID(studentID uint) ([]model.Classroom, error) {
	var out []model.Classroom
	for id, enrolled := range r.students {
		for _, sid := range enrolled {
			if sid == studentID {
				out = append(out, *r.classrooms[id])
			}
		}
	}
	return out, nil
}

func (r *fakeClassroomRepo) FindByTeacherID(teacherID uint) ([]model.Classroom, error) {
	var out []model.Classroom
	for _, c := range r.classrooms {
		if c.TeacherID == teacherID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeClassroomRepo) AddStudent(classroom *model.Classroom, student *model.Student) error {
	r.students[classroom.ID] = append(r.students[classroom.ID], student.ID)
	return nil
}

func (r *fakeClassroomRepo) AttachTest(classroom *model.Classroom, test *model.Test) error {
	return nil
}

func (r *fakeClassroomRepo) Delete(id uint) error {
	delete(r.classrooms, id)
	return nil
}

type fakeMembershipRepo struct {
	students map[uint]*model.Student // keyed by user id
	teachers map[uint]*model.Teacher // keyed by user id
	nextID   uint
}

func newFakeMembershipRepo() *fakeMembershipRepo {
	return &fakeMembershipRepo{
		students: make(map[uint]*model.Student),
		teachers: make(map[uint]*model.Teacher),
		nextID:   1,
	}
}

func (r *fakeMembershipRepo) FindStudentByUserID(userID uint) (*model.Student, error) {
	s, ok := r.students[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *fakeMembershipRepo) GetOrCreateStudent(userID uint) (*model.Student, error) {
	if s, ok := r.students[userID]; ok {
		return s, nil
	}
	s := &model.Student{ID: r.nextID, UserID: userID}
	r.nextID++
	r.students[userID] = s
	return s, nil
}

func (r *fakeMembershipRepo) FindTeacherByUserID(userID uint) (*model.Teacher, error) {
	t, ok := r.teachers[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (r *fakeMembershipRepo) CreateTeacher(teacher *model.Teacher) error {
	if teacher.ID == 0 {
		teacher.ID = r.nextID
		r.nextID++
	}
	r.teachers[teacher.UserID] = teacher
	return nil
}
