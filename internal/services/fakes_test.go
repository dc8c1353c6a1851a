package services

import (
	"context"
	"io"
	"sort"
	"strings"

	"review-backend/internal/models"
	"review-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type fakeUserRepo struct {
	users map[uuid.UUID]models.User

	// beforeBump runs just before the conditional version write, so a
	// test can interleave a competing consumer.
	beforeBump func()
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]models.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) BumpCodeVersion(_ context.Context, id uuid.UUID, fromVersion int) (bool, error) {
	if r.beforeBump != nil {
		r.beforeBump()
	}
	u, ok := r.users[id]
	if !ok || u.CodeVersion != fromVersion {
		return false, nil
	}
	u.CodeVersion++
	r.users[id] = u
	return true, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(_ context.Context, page, limit int, search string) ([]models.User, int64, error) {
	var all []models.User
	for _, u := range r.users {
		if search != "" && !strings.Contains(strings.ToLower(u.Username), strings.ToLower(search)) {
			continue
		}
		all = append(all, u)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Role != all[j].Role {
			return all[i].Role < all[j].Role
		}
		return all[i].Username < all[j].Username
	})
	return all, int64(len(all)), nil
}

type fakeCoverStorage struct {
	deleted []string
}

func (s *fakeCoverStorage) DeleteCover(coverURL string) error {
	s.deleted = append(s.deleted, coverURL)
	return nil
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

type fakeMailer struct {
	sent []sentMail
}

func (m *fakeMailer) Send(to, subject, body string) error {
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

type fakeTitleRepo struct {
	titles  map[uint]models.Title
	ratings map[uint]float64
	nextID  uint

	updateErr error
	deleteErr error
}

func newFakeTitleRepo() *fakeTitleRepo {
	return &fakeTitleRepo{
		titles:  make(map[uint]models.Title),
		ratings: make(map[uint]float64),
		nextID:  1,
	}
}

func (r *fakeTitleRepo) add(title models.Title) uint {
	title.ID = r.nextID
	r.nextID++
	r.titles[title.ID] = title
	return title.ID
}

func (r *fakeTitleRepo) Create(_ context.Context, title *models.Title) error {
	title.ID = r.nextID
	r.nextID++
	r.titles[title.ID] = *title
	return nil
}

func (r *fakeTitleRepo) Update(_ context.Context, title *models.Title) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.titles[title.ID] = *title
	return nil
}

func (r *fakeTitleRepo) Delete(_ context.Context, id uint) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	delete(r.titles, id)
	return nil
}

func (r *fakeTitleRepo) FindByID(_ context.Context, id uint) (*models.Title, error) {
	if t, ok := r.titles[id]; ok {
		return &t, nil
	}
	return nil, nil
}

func (r *fakeTitleRepo) FindAll(_ context.Context, page, limit int, filter repository.TitleFilter) ([]models.Title, int64, error) {
	var all []models.Title
	for _, t := range r.titles {
		if filter.Name != "" && !strings.Contains(t.Name, filter.Name) {
			continue
		}
		if filter.Year != 0 && t.Year != filter.Year {
			continue
		}
		all = append(all, t)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all, int64(len(all)), nil
}

func (r *fakeTitleRepo) Ratings(_ context.Context, titleIDs []uint) (map[uint]float64, error) {
	out := make(map[uint]float64)
	for _, id := range titleIDs {
		if v, ok := r.ratings[id]; ok {
			out[id] = v
		}
	}
	return out, nil
}

type fakeReviewRepo struct {
	reviews   map[uint]models.Review
	nextID    uint
	createErr error
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[uint]models.Review), nextID: 1}
}

func (r *fakeReviewRepo) Create(_ context.Context, review *models.Review) error {
	if r.createErr != nil {
		return r.createErr
	}
	review.ID = r.nextID
	r.nextID++
	r.reviews[review.ID] = *review
	return nil
}

func (r *fakeReviewRepo) Update(_ context.Context, review *models.Review) error {
	r.reviews[review.ID] = *review
	return nil
}

func (r *fakeReviewRepo) Delete(_ context.Context, id uint) error {
	delete(r.reviews, id)
	return nil
}

func (r *fakeReviewRepo) FindByID(_ context.Context, titleID, id uint) (*models.Review, error) {
	if rev, ok := r.reviews[id]; ok && rev.TitleID == titleID {
		return &rev, nil
	}
	return nil, nil
}

func (r *fakeReviewRepo) FindAllByTitle(_ context.Context, titleID uint, page, limit int) ([]models.Review, int64, error) {
	var all []models.Review
	for _, rev := range r.reviews {
		if rev.TitleID == titleID {
			all = append(all, rev)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].PubDate.Before(all[j].PubDate) })
	return all, int64(len(all)), nil
}

func (r *fakeReviewRepo) ExistsByAuthorAndTitle(_ context.Context, authorID uuid.UUID, titleID uint) (bool, error) {
	for _, rev := range r.reviews {
		if rev.AuthorID == authorID && rev.TitleID == titleID {
			return true, nil
		}
	}
	return false, nil
}

type fakeCommentRepo struct {
	comments map[uint]models.Comment
	nextID   uint
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[uint]models.Comment), nextID: 1}
}

func (r *fakeCommentRepo) Create(_ context.Context, comment *models.Comment) error {
	comment.ID = r.nextID
	r.nextID++
	r.comments[comment.ID] = *comment
	return nil
}

func (r *fakeCommentRepo) Update(_ context.Context, comment *models.Comment) error {
	r.comments[comment.ID] = *comment
	return nil
}

func (r *fakeCommentRepo) Delete(_ context.Context, id uint) error {
	delete(r.comments, id)
	return nil
}

func (r *fakeCommentRepo) FindByID(_ context.Context, reviewID, id uint) (*models.Comment, error) {
	if cm, ok := r.comments[id]; ok && cm.ReviewID == reviewID {
		return &cm, nil
	}
	return nil, nil
}

func (r *fakeCommentRepo) FindAllByReview(_ context.Context, reviewID uint, page, limit int) ([]models.Comment, int64, error) {
	var all []models.Comment
	for _, cm := range r.comments {
		if cm.ReviewID == reviewID {
			all = append(all, cm)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].PubDate.Before(all[j].PubDate) })
	return all, int64(len(all)), nil
}

type fakeCategoryRepo struct {
	categories map[string]models.Category
	nextID     uint
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[string]models.Category), nextID: 1}
}

func (r *fakeCategoryRepo) Create(_ context.Context, category *models.Category) error {
	category.ID = r.nextID
	r.nextID++
	r.categories[category.Slug] = *category
	return nil
}

func (r *fakeCategoryRepo) DeleteBySlug(_ context.Context, slug string) (bool, error) {
	if _, ok := r.categories[slug]; !ok {
		return false, nil
	}
	delete(r.categories, slug)
	return true, nil
}

func (r *fakeCategoryRepo) FindBySlug(_ context.Context, slug string) (*models.Category, error) {
	if c, ok := r.categories[slug]; ok {
		return &c, nil
	}
	return nil, nil
}

func (r *fakeCategoryRepo) FindAll(_ context.Context, page, limit int, search string) ([]models.Category, int64, error) {
	var all []models.Category
	for _, c := range r.categories {
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all, int64(len(all)), nil
}

type fakeGenreRepo struct {
	genres map[string]models.Genre
	nextID uint
}

func newFakeGenreRepo() *fakeGenreRepo {
	return &fakeGenreRepo{genres: make(map[string]models.Genre), nextID: 1}
}

func (r *fakeGenreRepo) Create(_ context.Context, genre *models.Genre) error {
	genre.ID = r.nextID
	r.nextID++
	r.genres[genre.Slug] = *genre
	return nil
}

func (r *fakeGenreRepo) DeleteBySlug(_ context.Context, slug string) (bool, error) {
	if _, ok := r.genres[slug]; !ok {
		return false, nil
	}
	delete(r.genres, slug)
	return true, nil
}

func (r *fakeGenreRepo) FindBySlug(_ context.Context, slug string) (*models.Genre, error) {
	if g, ok := r.genres[slug]; ok {
		return &g, nil
	}
	return nil, nil
}

func (r *fakeGenreRepo) FindBySlugs(_ context.Context, slugs []string) ([]models.Genre, error) {
	var out []models.Genre
	for _, slug := range slugs {
		if g, ok := r.genres[slug]; ok {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *fakeGenreRepo) FindAll(_ context.Context, page, limit int, search string) ([]models.Genre, int64, error) {
	var all []models.Genre
	for _, g := range r.genres {
		all = append(all, g)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all, int64(len(all)), nil
}
