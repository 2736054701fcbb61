package router

// Route names.
const (
	Home           = "home"
	Login          = "login"
	Register       = "register"
	ForgotPassword = "forgot-password"
	ResetPassword  = "reset-password"
	Activate       = "activate"
	MyPosts        = "my-posts"
	CreatePost     = "create-post"
	ShowPost       = "post"
	EditPost       = "edit-post"
	Profile        = "profile"
	ManageAccount  = "manage-account"
	ChangePassword = "change-password"
	ShowUser       = "user"
)

// Route is one entry of the route table. Pattern segments written as
// {name} capture a path parameter.
type Route struct {
	Name              string
	Pattern           string
	RequiresAuth      bool
	RequiresAnonymous bool
}

// DefaultRoutes is the TeamFinder route table. Order matters: the first
// matching pattern wins, so literal segments come before parameters.
func DefaultRoutes() []Route {
	return []Route{
		{Name: Home, Pattern: "/"},
		{Name: Login, Pattern: "/login", RequiresAnonymous: true},
		{Name: Register, Pattern: "/register", RequiresAnonymous: true},
		{Name: ForgotPassword, Pattern: "/forgot-password", RequiresAnonymous: true},
		{Name: ResetPassword, Pattern: "/reset-password/{token}", RequiresAnonymous: true},
		{Name: Activate, Pattern: "/activate/{token}"},
		{Name: MyPosts, Pattern: "/posts/my", RequiresAuth: true},
		{Name: CreatePost, Pattern: "/posts/create", RequiresAuth: true},
		{Name: ShowPost, Pattern: "/posts/{id}"},
		{Name: EditPost, Pattern: "/posts/{id}/edit", RequiresAuth: true},
		{Name: Profile, Pattern: "/profile", RequiresAuth: true},
		{Name: ManageAccount, Pattern: "/profile/settings", RequiresAuth: true},
		{Name: ChangePassword, Pattern: "/profile/password", RequiresAuth: true},
		{Name: ShowUser, Pattern: "/users/{id}", RequiresAuth: true},
	}
}
