// Package pushfolder versions a whole directory as a single asset.
//
// Every regular file under the directory becomes a resource dependency of
// the asset. The asset is created when the service does not know it yet;
// otherwise its dependency list is reconciled against the folder contents.
// The asset is then staged and pushed.
package pushfolder
