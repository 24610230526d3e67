package domain

// Profile is keyed by the immutable username. Only the credential
// owner's own profile is editable.
type Profile struct {
	Username    string
	DisplayName string
	Bio         string
	AvatarURL   string
	Posts       []Post
}

func (p Profile) Label() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.Username
}

// ProfileUpdate carries the editable profile fields.
type ProfileUpdate struct {
	DisplayName string
	Bio         string
	AvatarURL   string
}
