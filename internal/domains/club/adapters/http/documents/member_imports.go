package documents

import (
	"encoding/json"
	"strconv"

	"github.com/fbraem/kwai/internal/domains/club/domain"
	"github.com/fbraem/kwai/internal/domains/club/ports"
	"github.com/fbraem/kwai/internal/shared/jsonapi"
	"github.com/fbraem/kwai/internal/shared/presenter"
)

type UploadAttributes struct {
	Filename string `json:"filename"`
	Remark   string `json:"remark"`
	Preview  bool   `json:"preview"`
}

// NewUploadResource creates the resource of an upload. Uploads are identified by uuid.
func NewUploadResource(upload domain.FileUpload) jsonapi.Resource[UploadAttributes] {
	return jsonapi.Resource[UploadAttributes]{
		Type: UploadType,
		ID:   upload.UUID.String(),
		Attributes: UploadAttributes{
			Filename: upload.Filename,
			Remark:   upload.Remark,
			Preview:  upload.Preview,
		},
		Meta: jsonapi.NewResourceMeta(upload.TraceableTime),
	}
}

// MemberImportDocument holds the imported members as primary data and a JSON:API
// error for every row that could not be imported. The pointer of an error is the row.
type MemberImportDocument struct {
	Document MemberDocument
	Errors   []jsonapi.Error
}

func (d MemberImportDocument) MarshalJSON() ([]byte, error) {
	raw, err := json.Marshal(d.Document)
	if err != nil {
		return nil, err
	}
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, err
	}
	errs := d.Errors
	if errs == nil {
		errs = []jsonapi.Error{}
	}
	if payload["errors"], err = json.Marshal(errs); err != nil {
		return nil, err
	}
	return json.Marshal(payload)
}

var _ presenter.Presenter[ports.MemberImportResult] = (*MemberImportPresenter)(nil)

// MemberImportPresenter collects the results of a member import. The meta of every
// member resource tells the row and whether the member is new. Members that are not
// stored yet (preview) use their uuid as identifier for the member, person and contact.
type MemberImportPresenter struct {
	document MemberImportDocument
}

func NewMemberImportPresenter() *MemberImportPresenter {
	return &MemberImportPresenter{
		document: MemberImportDocument{Document: jsonapi.NewCollection[MemberAttributes](jsonapi.Meta{})},
	}
}

func (p *MemberImportPresenter) Present(result ports.MemberImportResult) {
	if result.Failed() {
		p.document.Errors = append(p.document.Errors, jsonapi.Error{
			Source: &jsonapi.ErrorSource{Pointer: strconv.Itoa(result.Row)},
			Detail: result.Message,
		})
		return
	}
	member := *result.Member
	isNew := member.ID().IsEmpty()
	document := NewMemberDocument(member)
	if isNew {
		document = newMemberDocumentWithTemporaryIDs(member)
	}
	resource, _ := document.Resource()
	resource.Meta.Extra = map[string]any{"row": result.Row, "new": isNew}
	single := jsonapi.NewDocument(resource)
	single.Include(document.Included()...)
	p.document.Document.Meta.Count++
	p.document.Document.Merge(single)
}

// Document returns the presented document.
func (p *MemberImportPresenter) Document() MemberImportDocument {
	return p.document
}

func newMemberDocumentWithTemporaryIDs(member domain.Member) MemberDocument {
	id := member.UUID.String()
	resource := NewMemberResource(member)
	resource.ID = id

	person := NewPersonResource(member.Person)
	person.ID = id
	contact := NewContactResource(member.Person.Contact)
	contact.ID = id
	person = person.Relate("contact", jsonapi.ToOne(contact.Ref()))
	resource = resource.Relate("person", jsonapi.ToOne(person.Ref()))

	document := jsonapi.NewDocument(resource)
	document.Include(
		person,
		NewCountryResource(member.Person.Nationality),
		contact,
		NewCountryResource(member.Person.Contact.Address.Country),
	)
	return document
}
