package model

import "strings"

// PropertyImage is a photo attached to a property. Multiple images may be
// flagged as main; ordering is by sort order then id.
type PropertyImage struct {
	id         int64
	propertyID int64
	fileURL    string
	isMain     bool
	caption    *string
	sortOrder  int
	enabled    bool
}

// NewPropertyImage validates and builds an enabled image. A blank caption is
// stored as absent.
func NewPropertyImage(propertyID int64, fileURL string, isMain bool, caption *string, sortOrder int) (*PropertyImage, error) {
	if propertyID <= 0 {
		return nil, NewInvalidInput(CodeInvalidPropertyID, "Property id must be positive")
	}
	fileURL = strings.TrimSpace(fileURL)
	if fileURL == "" {
		return nil, NewInvalidInput(CodeInvalidImageURL, "Image file url is required")
	}
	return &PropertyImage{
		propertyID: propertyID,
		fileURL:    fileURL,
		isMain:     isMain,
		caption:    normalizeOptional(caption),
		sortOrder:  sortOrder,
		enabled:    true,
	}, nil
}

// AssignIdentity records the storage-assigned id of an unsaved image.
func (i *PropertyImage) AssignIdentity(id int64) {
	if i.id == 0 {
		i.id = id
	}
}

func (i *PropertyImage) ID() int64 { return i.id }
func (i *PropertyImage) PropertyID() int64 { return i.propertyID }
func (i *PropertyImage) FileURL() string { return i.fileURL }
func (i *PropertyImage) IsMain() bool { return i.isMain }
func (i *PropertyImage) Caption() *string { return copyString(i.caption) }
func (i *PropertyImage) SortOrder() int { return i.sortOrder }
func (i *PropertyImage) Enabled() bool { return i.enabled }

// ImageState is the stored field set of an image.
type ImageState struct {
	ID         int64
	PropertyID int64
	FileURL    string
	IsMain     bool
	Caption    *string
	SortOrder  int
	Enabled    bool
}

// RestorePropertyImage rebuilds a stored image without validation.
func RestorePropertyImage(s ImageState) *PropertyImage {
	return &PropertyImage{
		id:         s.ID,
		propertyID: s.PropertyID,
		fileURL:    s.FileURL,
		isMain:     s.IsMain,
		caption:    copyString(s.Caption),
		sortOrder:  s.SortOrder,
		enabled:    s.Enabled,
	}
}

func (i *PropertyImage) State() ImageState {
	return ImageState{
		ID:         i.id,
		PropertyID: i.propertyID,
		FileURL:    i.fileURL,
		IsMain:     i.isMain,
		Caption:    i.Caption(),
		SortOrder:  i.sortOrder,
		Enabled:    i.enabled,
	}
}
