package http

// ListFavorites godoc
// @Summary List my favorites
// @Description Favorites of the current user, partitioned by target kind
// @Tags Favorites
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{data=object{posts=[]object{id=int,title=string,body=string,user=object{id=int,name=string}},users=[]object{id=int,name=string}}}
// @Failure 401 {object} object{error=string}
// @Router /favorites [get]
func (h *FavoriteHandler) ListFavoritesDoc() {}

// AddPostFavorite godoc
// @Summary Favorite a post
// @Description Idempotent; favoriting twice returns the existing favorite
// @Tags Favorites
// @Security BearerAuth
// @Produce json
// @Param id path int true "Post ID"
// @Success 201 {object} object{data=object{id=int,title=string,body=string,user=object{id=int,name=string}}}
// @Failure 401 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /posts/{id}/favorites [post]
func (h *FavoriteHandler) AddPostFavoriteDoc() {}

// RemovePostFavorite godoc
// @Summary Unfavorite a post
// @Tags Favorites
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 204
// @Failure 401 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /posts/{id}/favorites [delete]
func (h *FavoriteHandler) RemovePostFavoriteDoc() {}

// AddUserFavorite godoc
// @Summary Favorite a user
// @Description Subscribes to new post notifications from that user
// @Tags Favorites
// @Security BearerAuth
// @Produce json
// @Param id path int true "User ID"
// @Success 201 {object} object{data=object{id=int,name=string}}
// @Failure 400 {object} object{error=string}
// @Failure 401 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /users/{id}/favorites [post]
func (h *FavoriteHandler) AddUserFavoriteDoc() {}

// RemoveUserFavorite godoc
// @Summary Unfavorite a user
// @Tags Favorites
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 204
// @Failure 401 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /users/{id}/favorites [delete]
func (h *FavoriteHandler) RemoveUserFavoriteDoc() {}
