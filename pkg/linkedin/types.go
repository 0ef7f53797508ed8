package linkedin

// PostRequest carries the fields shared by every content variant. When
// OrganizationID is set the post is attributed to that organization page,
// otherwise to the authenticated member.
type PostRequest struct {
	Text           string `json:"text"`
	Visibility     string `json:"visibility,omitempty"`
	OrganizationID string `json:"organizationId,omitempty"`
}

type ImagePostRequest struct {
	PostRequest
	ImageURL         string `json:"imageUrl"`
	ImageDescription string `json:"imageDescription,omitempty"`
}

type MediaPostRequest struct {
	PostRequest
	MediaDescription string `json:"mediaDescription,omitempty"`
}

type VideoPostRequest struct {
	PostRequest
	VideoDescription string `json:"videoDescription,omitempty"`
}

type ArticlePostRequest struct {
	PostRequest
	ArticleURL         string `json:"articleUrl"`
	ArticleTitle       string `json:"articleTitle,omitempty"`
	ArticleDescription string `json:"articleDescription,omitempty"`
}

// TokenResponse is the token endpoint's payload for both the code exchange
// and the refresh grant.
type TokenResponse struct {
	AccessToken           string `json:"access_token"`
	ExpiresIn             int    `json:"expires_in"`
	RefreshToken          string `json:"refresh_token,omitempty"`
	RefreshTokenExpiresIn int    `json:"refresh_token_expires_in,omitempty"`
}

type Profile struct {
	ID             string `json:"id"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email,omitempty"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

type Organization struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	VanityName    string `json:"vanityName,omitempty"`
	LocalizedName string `json:"localizedName,omitempty"`
}

// OrganizationDebug explains what happened on the organization listing call,
// whether it succeeded or not. The listing itself never fails; the diagnostic
// payload is the only place failure detail surfaces.
type OrganizationDebug struct {
	APICallSuccessful bool     `json:"apiCallSuccessful"`
	HTTPStatus        int      `json:"httpStatus,omitempty"`
	ElementsCount     int      `json:"elementsCount"`
	ErrorMessage      string   `json:"errorMessage,omitempty"`
	PossibleReasons   []string `json:"possibleReasons,omitempty"`
	Message           string   `json:"message"`
}

type OrganizationList struct {
	Organizations []Organization    `json:"organizations"`
	Debug         OrganizationDebug `json:"debug"`
}

// Post is the platform's created-post representation, returned to the caller
// verbatim so the assigned ID can be correlated.
type Post struct {
	ID      string `json:"id"`
	Author  string `json:"author,omitempty"`
	Created struct {
		Time int64 `json:"time"`
	} `json:"created,omitempty"`
}

// UploadHandle pairs a one-time upload URL with the asset URN it was issued
// for. Valid for exactly one binary push.
type UploadHandle struct {
	UploadURL string `json:"uploadUrl"`
	Asset     string `json:"asset"`
}

const (
	visibilityPublic = "PUBLIC"

	categoryNone    = "NONE"
	categoryImage   = "IMAGE"
	categoryVideo   = "VIDEO"
	categoryArticle = "ARTICLE"
)
