package services

import (
	"context"
	"testing"

	"github.com/CrossCheckCME/case_service/internal/apperr"
	"github.com/CrossCheckCME/case_service/internal/domain"
	"github.com/CrossCheckCME/case_service/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	uploaded []string
	err      error
}

func (f *fakeUploader) UploadBytes(ctx context.Context, folder, objectName string, content []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.uploaded = append(f.uploaded, folder+"/"+objectName)
	return "https://cdn.example.com/" + folder + "/" + objectName, nil
}

type docFixture struct {
	caseRepo *fakeCaseRepo
	docRepo  *fakeDocRepo
	uploader *fakeUploader
	producer *fakeProducer
	svc      DocumentService
}

func newDocFixture(t *testing.T) *docFixture {
	t.Helper()
	f := &docFixture{
		caseRepo: newFakeCaseRepo(),
		docRepo:  newFakeDocRepo(),
		uploader: &fakeUploader{},
		producer: &fakeProducer{},
	}
	f.svc = NewDocumentService(f.caseRepo, f.docRepo, f.uploader, f.producer)
	return f
}

func (f *docFixture) seedCase(t *testing.T, userID string, status domain.CaseStatus) *domain.Case {
	t.Helper()
	c := &domain.Case{UserID: userID, Status: status}
	require.NoError(t, f.caseRepo.Create(c))
	return c
}

func pdf(name string, size int64) dto.DocumentUpload {
	return dto.DocumentUpload{
		FileName:    name,
		ContentType: "application/pdf",
		Size:        size,
		Content:     []byte("%PDF-1.4"),
	}
}

func TestListDocuments_AccessControl(t *testing.T) {
	f := newDocFixture(t)
	c := f.seedCase(t, "u1", domain.CaseStatusDraft)

	_, err := f.svc.ListDocuments("u2", c.ID)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	_, err = f.svc.ListDocuments("u1", "missing-case")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	docs, err := f.svc.ListDocuments("u1", c.ID)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestUploadDocuments_RejectsDisallowedMime(t *testing.T) {
	f := newDocFixture(t)
	c := f.seedCase(t, "u1", domain.CaseStatusDraft)

	files := []dto.DocumentUpload{{
		FileName:    "setup.exe",
		ContentType: "application/x-msdownload",
		Size:        1024,
		Content:     []byte("MZ"),
	}}
	_, err := f.svc.UploadDocuments(context.Background(), "u1", c.ID, files)
	require.Error(t, err)
	assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))
	assert.Empty(t, f.docRepo.docs)
}

func TestUploadDocuments_RejectsOversize(t *testing.T) {
	f := newDocFixture(t)
	c := f.seedCase(t, "u1", domain.CaseStatusDraft)

	_, err := f.svc.UploadDocuments(context.Background(), "u1", c.ID,
		[]dto.DocumentUpload{pdf("huge.pdf", MaxFileSizeBytes+1)})
	require.Error(t, err)
	assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))
	assert.Empty(t, f.docRepo.docs)

	// exactly at the ceiling is accepted
	created, err := f.svc.UploadDocuments(context.Background(), "u1", c.ID,
		[]dto.DocumentUpload{pdf("max.pdf", MaxFileSizeBytes)})
	require.NoError(t, err)
	assert.Len(t, created, 1)
}

func TestUploadDocuments_DraftOnly(t *testing.T) {
	f := newDocFixture(t)
	c := f.seedCase(t, "u1", domain.CaseStatusSubmitted)

	_, err := f.svc.UploadDocuments(context.Background(), "u1", c.ID,
		[]dto.DocumentUpload{pdf("late.pdf", 100)})
	require.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestUploadDocuments_NotOwner(t *testing.T) {
	f := newDocFixture(t)
	c := f.seedCase(t, "u1", domain.CaseStatusDraft)

	_, err := f.svc.UploadDocuments(context.Background(), "u2", c.ID,
		[]dto.DocumentUpload{pdf("a.pdf", 100)})
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestUploadDocuments_EmptyBatch(t *testing.T) {
	f := newDocFixture(t)
	c := f.seedCase(t, "u1", domain.CaseStatusDraft)

	_, err := f.svc.UploadDocuments(context.Background(), "u1", c.ID, nil)
	assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))
}

func TestUploadDocuments_AbortKeepsEarlierRows(t *testing.T) {
	f := newDocFixture(t)
	c := f.seedCase(t, "u1", domain.CaseStatusDraft)

	files := []dto.DocumentUpload{
		pdf("first.pdf", 100),
		{FileName: "bad.exe", ContentType: "application/x-msdownload", Size: 50, Content: []byte("MZ")},
		pdf("never-reached.pdf", 100),
	}
	_, err := f.svc.UploadDocuments(context.Background(), "u1", c.ID, files)
	require.Error(t, err)
	assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))

	// the row written before the abort stays committed
	docs, listErr := f.docRepo.ListByCase(c.ID)
	require.NoError(t, listErr)
	require.Len(t, docs, 1)
	assert.Equal(t, "first.pdf", docs[0].FileName)
}

func TestUploadDocuments_Success(t *testing.T) {
	f := newDocFixture(t)
	c := f.seedCase(t, "u1", domain.CaseStatusDraft)

	created, err := f.svc.UploadDocuments(context.Background(), "u1", c.ID, []dto.DocumentUpload{
		pdf("report.pdf", 2048),
		{FileName: "scan.png", ContentType: "image/png", Size: 4096, Content: []byte{0x89, 'P', 'N', 'G'}},
	})
	require.NoError(t, err)
	require.Len(t, created, 2)
	for _, d := range created {
		assert.NotEmpty(t, d.ID)
	}
	assert.Len(t, f.uploader.uploaded, 2)
	assert.Len(t, f.producer.messages, 1)
}

func TestUploadDocuments_StorageFailureKeepsMetadata(t *testing.T) {
	f := newDocFixture(t)
	c := f.seedCase(t, "u1", domain.CaseStatusDraft)
	f.uploader.err = assert.AnError

	created, err := f.svc.UploadDocuments(context.Background(), "u1", c.ID,
		[]dto.DocumentUpload{pdf("report.pdf", 2048)})
	require.NoError(t, err)
	assert.Len(t, created, 1)
}

func TestDeleteDocument(t *testing.T) {
	f := newDocFixture(t)
	c := f.seedCase(t, "u1", domain.CaseStatusDraft)
	doc := &domain.CaseDocument{CaseID: c.ID, UserID: "u1", FileName: "a.pdf"}
	require.NoError(t, f.docRepo.Create(doc))

	err := f.svc.DeleteDocument("u1", c.ID, "missing-doc")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	err = f.svc.DeleteDocument("u2", c.ID, doc.ID)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	require.NoError(t, f.svc.DeleteDocument("u1", c.ID, doc.ID))
	_, err = f.docRepo.FindInCase(doc.ID, c.ID)
	assert.Error(t, err)
}

func TestDeleteDocument_DraftOnly(t *testing.T) {
	f := newDocFixture(t)
	c := f.seedCase(t, "u1", domain.CaseStatusUnderReview)
	doc := &domain.CaseDocument{CaseID: c.ID, UserID: "u1", FileName: "a.pdf"}
	require.NoError(t, f.docRepo.Create(doc))

	err := f.svc.DeleteDocument("u1", c.ID, doc.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	_, found := f.docRepo.docs[doc.ID]
	assert.True(t, found)
}

func TestDeleteDocument_WrongCaseScope(t *testing.T) {
	f := newDocFixture(t)
	c1 := f.seedCase(t, "u1", domain.CaseStatusDraft)
	c2 := f.seedCase(t, "u1", domain.CaseStatusDraft)
	doc := &domain.CaseDocument{CaseID: c1.ID, UserID: "u1", FileName: "a.pdf"}
	require.NoError(t, f.docRepo.Create(doc))

	// same document id addressed under a different case reads as missing
	err := f.svc.DeleteDocument("u1", c2.ID, doc.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
