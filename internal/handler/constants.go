package handler

// Route pattern constants for chi router registration.
const (
	// RouteRoot is the root path.
	RouteRoot = "/"
	// RouteAbout is the about page route.
	RouteAbout = "/about"
	// RouteContact is the contact page route.
	RouteContact = "/contact"
	// RouteLogin is the login route.
	RouteLogin = "/login"
	// RouteLogout is the logout route.
	RouteLogout = "/logout"
	// RouteRegister is the registration route.
	RouteRegister = "/register"
	// RouteHealth is the health check route.
	RouteHealth = "/health"

	// RouteParamID is the ID parameter pattern.
	RouteParamID = "/{id}"
	// RoutePost is the post detail route pattern.
	RoutePost = "/post" + RouteParamID
	// RoutePostComments is the comment submission route pattern.
	RoutePostComments = RoutePost + "/comments"

	// RouteAdminPosts is the admin post management prefix.
	RouteAdminPosts = "/admin/posts"
	// RouteAdminPostsNew is the post creation route.
	RouteAdminPostsNew = RouteAdminPosts + "/new"
	// RouteAdminPostsEdit is the post edit route pattern.
	RouteAdminPostsEdit = RouteAdminPosts + RouteParamID + "/edit"
	// RouteAdminPostsDelete is the post delete route pattern.
	RouteAdminPostsDelete = RouteAdminPosts + RouteParamID + "/delete"
)

const (
	redirectRoot    = RouteRoot
	redirectLogin   = RouteLogin
	redirectContact = RouteContact

	redirectPostID = "/post/%d"
)
