package packets

type CreateBookmarkRequest struct {
	Surah int     `json:"surah" binding:"required,min=1,max=114"`
	Ayah  int     `json:"ayah" binding:"required,min=1"`
	Note  *string `json:"note"`
}

type SetLastReadRequest struct {
	Surah int `json:"surah" binding:"required,min=1,max=114"`
	Ayah  int `json:"ayah" binding:"required,min=1"`
}
