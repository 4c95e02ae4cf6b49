package main

// @title Social Favorites API
// @version 1.0
// @description Posts, favorites and new-post notifications for the users who favorited an author

// @license.name MIT

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @tag.name Auth
// @tag.description Registration and login

// @tag.name Users
// @tag.description Public user profiles

// @tag.name Posts
// @tag.description Post publishing

// @tag.name Favorites
// @tag.description Favoriting posts and users

// @tag.name Health
// @tag.description Health check endpoints
