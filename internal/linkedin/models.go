// internal/linkedin/models.go
package linkedin

// uploadMechanismKey addresses the upload request inside the registerUpload
// response. The key is part of the LinkedIn wire format.
const uploadMechanismKey = "com.linkedin.digitalmedia.uploading.MediaUploadHttpRequest"

type registerUploadRequest struct {
	RegisterUploadRequest registerUploadBody `json:"registerUploadRequest"`
}

type registerUploadBody struct {
	Recipes              []string              `json:"recipes"`
	Owner                string                `json:"owner"`
	ServiceRelationships []serviceRelationship `json:"serviceRelationships"`
}

type serviceRelationship struct {
	RelationshipType string `json:"relationshipType"`
	Identifier       string `json:"identifier"`
}

type registerUploadResponse struct {
	Value struct {
		UploadMechanism map[string]struct {
			UploadURL string `json:"uploadUrl"`
		} `json:"uploadMechanism"`
		Asset string `json:"asset"`
	} `json:"value"`
}

type ugcPostRequest struct {
	Author          string                  `json:"author"`
	LifecycleState  string                  `json:"lifecycleState"`
	SpecificContent map[string]shareContent `json:"specificContent"`
	Visibility      map[string]string       `json:"visibility"`
}

type shareContent struct {
	ShareCommentary    textValue    `json:"shareCommentary"`
	ShareMediaCategory string       `json:"shareMediaCategory"`
	Media              []shareMedia `json:"media,omitempty"`
}

type shareMedia struct {
	Status      string    `json:"status"`
	Description textValue `json:"description"`
	Media       string    `json:"media"`
	Title       textValue `json:"title"`
}

type textValue struct {
	Text string `json:"text"`
}

type ugcPostResponse struct {
	ID string `json:"id"`
}
