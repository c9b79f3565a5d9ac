package service

import (
	"Quill/internal/model"
	"Quill/internal/repository"
	"context"
	"errors"
	"io"
	"sort"
	"strconv"
	"sync"
	"time"
)

var errStoreDown = errors.New("connection refused")

type assocKey struct {
	subject uint64
	user    uint64
}

// fakeAssocRepo 内存版关联表，主键冲突返回 repository.ErrDuplicate
type fakeAssocRepo struct {
	mu   sync.Mutex
	rows map[assocKey]time.Time

	existsErr error
	createErr error
	deleteErr error

	// onExists 在 Exists 读取前调用，不持有锁
	onExists func()
}

func newFakeAssocRepo() *fakeAssocRepo {
	return &fakeAssocRepo{rows: make(map[assocKey]time.Time)}
}

func (f *fakeAssocRepo) put(subjectID, userID uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[assocKey{subjectID, userID}] = time.Now()
}

func (f *fakeAssocRepo) remove(subjectID, userID uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rows, assocKey{subjectID, userID})
}

func (f *fakeAssocRepo) size() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

func (f *fakeAssocRepo) Exists(_ context.Context, subjectID, userID uint64) (bool, error) {
	if f.onExists != nil {
		f.onExists()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.existsErr != nil {
		return false, f.existsErr
	}
	_, ok := f.rows[assocKey{subjectID, userID}]
	return ok, nil
}

func (f *fakeAssocRepo) Create(_ context.Context, subjectID, userID uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	k := assocKey{subjectID, userID}
	if _, ok := f.rows[k]; ok {
		return repository.ErrDuplicate
	}
	f.rows[k] = time.Now()
	return nil
}

func (f *fakeAssocRepo) Delete(_ context.Context, subjectID, userID uint64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return false, f.deleteErr
	}
	k := assocKey{subjectID, userID}
	if _, ok := f.rows[k]; !ok {
		return false, nil
	}
	delete(f.rows, k)
	return true, nil
}

func (f *fakeAssocRepo) Count(_ context.Context, subjectID uint64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.existsErr != nil {
		return 0, f.existsErr
	}
	var n int64
	for k := range f.rows {
		if k.subject == subjectID {
			n++
		}
	}
	return n, nil
}

func (f *fakeAssocRepo) CountBatch(_ context.Context, subjectIDs []uint64) (map[uint64]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.existsErr != nil {
		return nil, f.existsErr
	}
	want := make(map[uint64]bool, len(subjectIDs))
	for _, id := range subjectIDs {
		want[id] = true
	}
	res := make(map[uint64]int64)
	for k := range f.rows {
		if want[k.subject] {
			res[k.subject]++
		}
	}
	return res, nil
}

func (f *fakeAssocRepo) FilterExisting(_ context.Context, userID uint64, subjectIDs []uint64) (map[uint64]bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.existsErr != nil {
		return nil, f.existsErr
	}
	res := make(map[uint64]bool)
	for _, id := range subjectIDs {
		if _, ok := f.rows[assocKey{id, userID}]; ok && userID != 0 {
			res[id] = true
		}
	}
	return res, nil
}

func (f *fakeAssocRepo) PurgeDeletedSubjects(context.Context) (int64, error) {
	return 0, nil
}

type fakePostRepo struct {
	mu    sync.Mutex
	posts map[uint64]*model.Post
	err   error
}

func newFakePostRepo(posts ...*model.Post) *fakePostRepo {
	f := &fakePostRepo{posts: make(map[uint64]*model.Post)}
	for _, p := range posts {
		f.posts[p.ID] = p
	}
	return f
}

func (f *fakePostRepo) GetPost(_ context.Context, id uint64) (*model.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.posts[id]
	if !ok || p.IsDeleted {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakePostRepo) DeletePost(_ context.Context, id uint64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	p, ok := f.posts[id]
	if !ok || p.IsDeleted {
		return false, nil
	}
	p.IsDeleted = true
	return true, nil
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	posts    *fakePostRepo
	comments []*model.PostComment
	nextID   uint64
	clock    time.Time
	err      error
	lists    int
	// afterList 在快照取出后、返回前执行一次，模拟读写交错
	afterList func()
}

func newFakeCommentRepo(posts *fakePostRepo) *fakeCommentRepo {
	return &fakeCommentRepo{posts: posts, clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// seed 直接写入一条评论，CreatedAt 单调递增
func (f *fakeCommentRepo) seed(postID, userID, parentID uint64, content string) *model.PostComment {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	f.clock = f.clock.Add(time.Second)
	c := &model.PostComment{ID: f.nextID, PostID: postID, UserID: userID, ParentID: parentID, Content: content, CreatedAt: f.clock}
	f.comments = append(f.comments, c)
	return c
}

func (f *fakeCommentRepo) find(id uint64) *model.PostComment {
	for _, c := range f.comments {
		if c.ID == id && !c.IsDeleted {
			return c
		}
	}
	return nil
}

func (f *fakeCommentRepo) GetComments(_ context.Context, postID uint64) ([]*model.PostComment, error) {
	f.mu.Lock()
	f.lists++
	if f.err != nil {
		f.mu.Unlock()
		return nil, f.err
	}
	var out []*model.PostComment
	for _, c := range f.comments {
		if c.PostID == postID && !c.IsDeleted {
			cp := *c
			out = append(out, &cp)
		}
	}
	hook := f.afterList
	f.afterList = nil
	f.mu.Unlock()

	if hook != nil {
		hook()
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (f *fakeCommentRepo) GetCommentByID(_ context.Context, commentID uint64) (*model.PostComment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	c := f.find(commentID)
	if c == nil {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCommentRepo) CreateComment(_ context.Context, comment *model.PostComment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.nextID++
	comment.ID = f.nextID
	cp := *comment
	f.comments = append(f.comments, &cp)
	return nil
}

func (f *fakeCommentRepo) DeleteComment(_ context.Context, commentID uint64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	c := f.find(commentID)
	if c == nil {
		return false, nil
	}
	c.IsDeleted = true
	return true, nil
}

func (f *fakeCommentRepo) GetCommentAuthors(ctx context.Context, commentID uint64) (*model.CommentAuthors, error) {
	f.mu.Lock()
	if f.err != nil {
		f.mu.Unlock()
		return nil, f.err
	}
	c := f.find(commentID)
	f.mu.Unlock()
	if c == nil {
		return nil, nil
	}
	post, err := f.posts.GetPost(ctx, c.PostID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, nil
	}
	return &model.CommentAuthors{CommentID: c.ID, PostID: c.PostID, AuthorID: c.UserID, PostAuthorID: post.UserID}, nil
}

func (f *fakeCommentRepo) CountComments(_ context.Context, postID uint64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	var n int64
	for _, c := range f.comments {
		if c.PostID == postID && !c.IsDeleted {
			n++
		}
	}
	return n, nil
}

type fakeReportRepo struct {
	mu      sync.Mutex
	reports []*model.Report
	err     error
}

func (f *fakeReportRepo) CreateReport(_ context.Context, report *model.Report) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	report.ID = uint64(len(f.reports) + 1)
	f.reports = append(f.reports, report)
	return nil
}

type fakeLocker struct {
	mu   sync.Mutex
	held map[string]bool
	err  error
}

func newFakeLocker() *fakeLocker {
	return &fakeLocker{held: make(map[string]bool)}
}

func (f *fakeLocker) TryAcquire(_ context.Context, key string, _ time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	if f.held[key] {
		return false, nil
	}
	f.held[key] = true
	return true, nil
}

func (f *fakeLocker) Release(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.held, key)
	return nil
}

type recordingInvalidator struct {
	mu     sync.Mutex
	scopes []string
}

func (r *recordingInvalidator) NotifyStale(_ context.Context, scope string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scopes = append(r.scopes, scope)
}

func (r *recordingInvalidator) has(scope string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.scopes {
		if s == scope {
			return true
		}
	}
	return false
}

func (r *recordingInvalidator) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.scopes)
}

// fakeViewCache 同时实现读缓存与失效，按版本号回填
type fakeViewCache struct {
	mu       sync.Mutex
	entries  map[string][]*model.PostComment
	versions map[string]int
	hits     int
}

func newFakeViewCache() *fakeViewCache {
	return &fakeViewCache{
		entries:  make(map[string][]*model.PostComment),
		versions: make(map[string]int),
	}
}

func (f *fakeViewCache) key(scope string, version int) string {
	return scope + "#" + strconv.Itoa(version)
}

func (f *fakeViewCache) GetComments(_ context.Context, scope string) ([]*model.PostComment, string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stamp := strconv.Itoa(f.versions[scope])
	c, ok := f.entries[f.key(scope, f.versions[scope])]
	if ok {
		f.hits++
	}
	return c, stamp, ok
}

func (f *fakeViewCache) SetComments(_ context.Context, scope, stamp string, comments []*model.PostComment) {
	f.mu.Lock()
	defer f.mu.Unlock()
	version, err := strconv.Atoi(stamp)
	if err != nil {
		return
	}
	f.entries[f.key(scope, version)] = comments
}

func (f *fakeViewCache) NotifyStale(_ context.Context, scope string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.versions[scope]++
}

type fakeStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	err     error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string][]byte)}
}

func (f *fakeStorage) PutObject(_ context.Context, objectName string, reader io.Reader, _ int64, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	b, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[objectName] = b
	return objectName, nil
}

func (f *fakeStorage) PublicURL(objectName string) string {
	return "https://static.example.test/quill/" + objectName
}

// barrier 前 n 次调用互相等待，之后直接放行
type barrier struct {
	mu    sync.Mutex
	n     int
	count int
	ch    chan struct{}
}

func newBarrier(n int) *barrier {
	return &barrier{n: n, ch: make(chan struct{})}
}

func (b *barrier) wait() {
	b.mu.Lock()
	b.count++
	c := b.count
	if c == b.n {
		close(b.ch)
	}
	b.mu.Unlock()
	if c <= b.n {
		<-b.ch
	}
}
