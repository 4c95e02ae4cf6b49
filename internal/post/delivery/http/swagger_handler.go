package http

// ListPosts godoc
// @Summary List posts
// @Description Newest first, with author
// @Tags Posts
// @Produce json
// @Param limit query int false "Page size (max 100)"
// @Param offset query int false "Offset"
// @Success 200 {object} object{data=[]object{id=int,title=string,body=string,image_url=string,user=object{id=int,name=string}}}
// @Router /posts [get]
func (h *PostHandler) ListPostsDoc() {}

// GetPost godoc
// @Summary Get a post
// @Tags Posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} object{data=object{id=int,title=string,body=string,image_url=string,user=object{id=int,name=string}}}
// @Failure 404 {object} object{error=string}
// @Router /posts/{id} [get]
func (h *PostHandler) GetPostDoc() {}

// CreatePost godoc
// @Summary Create a post
// @Description Stores the post and notifies users who favorited the author
// @Tags Posts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{title=string,body=string,image_url=string} true "Post data"
// @Success 201 {object} object{data=object{id=int,title=string,body=string,image_url=string,user=object{id=int,name=string}}}
// @Failure 401 {object} object{error=string}
// @Failure 422 {object} object{error=string}
// @Router /posts [post]
func (h *PostHandler) CreatePostDoc() {}

// UpdatePost godoc
// @Summary Update a post
// @Tags Posts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param request body object{title=string,body=string,image_url=string} true "Post data"
// @Success 200 {object} object{data=object{id=int,title=string,body=string}}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /posts/{id} [put]
func (h *PostHandler) UpdatePostDoc() {}

// DeletePost godoc
// @Summary Delete a post
// @Tags Posts
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 204
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /posts/{id} [delete]
func (h *PostHandler) DeletePostDoc() {}
