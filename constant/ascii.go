package constant

// AsciiArtLogo is the banner printed by the version command.
const AsciiArtLogo = `  _
 | |_   _ _ __ __ _
 | | | | | '__/ _' |
 | | |_| | | | (_| |
 |_|\__, |_|  \__,_|
    |___/`
